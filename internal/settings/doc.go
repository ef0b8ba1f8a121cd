// Package settings persists the user's study settings as a JSON object.
// Known keys fall back to defaults when missing or mistyped; unknown keys
// are carried through load and save untouched.
package settings
