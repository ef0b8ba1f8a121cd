package internal

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// NewEntryID returns a fresh opaque identifier for a word entry.
// Identity never depends on the entry's field values.
func NewEntryID() string {
	return uuid.NewString()
}

// SanitizeFilename creates a safe filename from a string.
// Letters and digits of any script are kept; everything else becomes '_'.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "words"
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter or digit
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
