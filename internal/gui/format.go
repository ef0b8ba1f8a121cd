package gui

import (
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/wordcycle/internal"
	"codeberg.org/snonux/wordcycle/internal/cycle"
	"codeberg.org/snonux/wordcycle/internal/domain"
	"codeberg.org/snonux/wordcycle/internal/settings"
)

const emptyHint = "Open the word list (w) to add or import words"

// cardText is the text shown in the three labels of the main window.
type cardText struct {
	Word    string
	Reading string
	Meaning string
}

func cardFor(d cycle.Display) cardText {
	if d.Empty {
		return cardText{Word: "No words", Meaning: emptyHint}
	}
	return cardText{Word: d.Word, Reading: d.Reading, Meaning: d.Meaning}
}

func statusText(d cycle.Display) string {
	if d.Empty {
		return "Word list is empty"
	}
	s := fmt.Sprintf("Word %d of %d", d.Index+1, d.Total)
	if d.Paused {
		s += " (paused)"
	}
	return s
}

// entryLabel renders one row of the word list.
func entryLabel(e domain.Entry) string {
	parts := []string{e.Word}
	if e.Reading != "" {
		parts = append(parts, "["+e.Reading+"]")
	}
	if e.Meaning != "" {
		parts = append(parts, "= "+e.Meaning)
	}
	return strings.Join(parts, " ")
}

// errorMessage turns validation errors into one line per field for dialogs.
func errorMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		lines := make([]string, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			lines = append(lines, fmt.Sprintf("%s: %s", fieldLabel(fe.Field), fe.Message))
		}
		return strings.Join(lines, "\n")
	}
	return err.Error()
}

var fieldLabels = map[string]string{
	settings.KeyShowMeaningTimer: "Show meaning after",
	settings.KeyNextWordTimer:    "Next word after",
	"word":                       "Word",
	"file":                       "File",
	"words":                      "Word list",
}

func fieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// exportFileName suggests a file name for an Anki export of deck.
func exportFileName(deck string, asCSV bool) string {
	if asCSV {
		return internal.SanitizeFilename(deck) + ".csv"
	}
	return internal.SanitizeFilename(deck) + ".apkg"
}
