// Package domain holds the vocabulary entry type and the error taxonomy
// shared by the word store, the settings store and the session.
package domain
