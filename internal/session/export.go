package session

import (
	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal/anki"
)

// ExportAnki writes the word list to path, as an Anki package or, with
// asCSV, as a CSV file for Anki's importer. It returns the number of cards.
func (s *Session) ExportAnki(path, deckName string, asCSV bool) (int, error) {
	entries := s.words.Entries()
	if len(entries) == 0 {
		return 0, errEmptyList
	}

	opts := anki.DefaultGeneratorOptions()
	opts.OutputPath = path
	gen := anki.NewGenerator(opts)
	gen.AddEntries(entries)

	var err error
	if asCSV {
		err = gen.GenerateCSV()
	} else {
		err = gen.GenerateAPKG(path, deckName)
	}
	if err != nil {
		return 0, err
	}

	total, withReading, withMeaning := gen.Stats()
	s.logger.Info("anki export written",
		zap.String("path", path),
		zap.Bool("csv", asCSV),
		zap.Int("cards", total),
		zap.Int("with_reading", withReading),
		zap.Int("with_meaning", withMeaning),
	)
	return total, nil
}
