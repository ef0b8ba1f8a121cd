package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// Card represents a single Anki flashcard
type Card struct {
	GUID    string // Stable note identity, taken from the word entry
	Word    string // The word as written
	Reading string // Optional reading (kana, transliteration)
	Meaning string // Optional meaning
}

// CardFromEntry converts a word list entry into a card.
func CardFromEntry(e domain.Entry) Card {
	return Card{
		GUID:    e.ID,
		Word:    e.Word,
		Reading: e.Reading,
		Meaning: e.Meaning,
	}
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddEntries adds one card per entry, keeping their order.
func (g *Generator) AddEntries(entries []domain.Entry) {
	for _, e := range entries {
		g.AddCard(CardFromEntry(e))
	}
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	if err := os.MkdirAll(filepath.Dir(g.options.OutputPath), 0755); err != nil {
		return domain.IOError("failed to create output directory", err)
	}

	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return domain.IOError("failed to create CSV file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		headers := []string{"Word", "Reading", "Meaning"}
		if err := writer.Write(headers); err != nil {
			return domain.IOError("failed to write headers", err)
		}
	}

	for _, card := range g.cards {
		if err := writer.Write([]string{card.Word, card.Reading, card.Meaning}); err != nil {
			return domain.IOError(fmt.Sprintf("failed to write card %q", card.Word), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return domain.IOError("failed to flush CSV file", err)
	}
	return nil
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName)

	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}

	return apkgGen.GenerateAPKG(outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withReading, withMeaning int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.Reading != "" {
			withReading++
		}
		if card.Meaning != "" {
			withMeaning++
		}
	}

	return
}
