package internal

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewEntryID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewEntryID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("NewEntryID() = %q, not a UUID: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("NewEntryID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JLPT N5", "JLPT_N5"},
		{"日本語 単語", "日本語_単語"},
		{"my-deck_01", "my-deck_01"},
		{"a/b\\c", "a_b_c"},
		{"  ", "words"},
		{"", "words"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
