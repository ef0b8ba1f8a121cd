package domain

import (
	"strings"

	"codeberg.org/snonux/wordcycle/internal"
)

// Entry is a single vocabulary record. ID is its identity: two entries
// with identical fields are still distinct records.
type Entry struct {
	ID      string
	Word    string
	Reading string
	Meaning string
}

// NewEntry trims the fields and assigns a fresh identity.
// The word must be non-empty after trimming.
func NewEntry(word, reading, meaning string) (Entry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Entry{}, NewValidationError("word", "must not be empty")
	}
	return Entry{
		ID:      internal.NewEntryID(),
		Word:    word,
		Reading: strings.TrimSpace(reading),
		Meaning: strings.TrimSpace(meaning),
	}, nil
}

// IDSet builds a lookup set from a list of identities.
func IDSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
