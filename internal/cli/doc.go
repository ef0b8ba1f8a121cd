// Package cli provides command-line interface setup and configuration
// for the wordcycle application. It handles flag parsing, command
// creation, logging setup and the headless actions, using cobra, viper
// and zap.
package cli
