package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// ReadBatchFile reads entries from a plain-text word list.
// Supports formats:
// - Word only: "猫"
// - With meaning: "猫 = cat"
// - With reading and meaning: "猫 = ねこ = cat"
// Lines starting with '#' and blank lines are skipped, as are lines whose
// word part is empty.
func ReadBatchFile(filename string) ([]domain.Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("batch file %s: %w", filename, domain.ErrNotFound)
		}
		return nil, domain.IOError("failed to read batch file", err)
	}
	defer f.Close()

	entries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("batch file %s: %w", filename, err)
	}
	return entries, nil
}

// Read parses the plain-text format from r. A leading UTF-8 BOM is dropped.
func Read(r io.Reader) ([]domain.Entry, error) {
	scanner := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))

	var entries []domain.Entry
	for scanner.Scan() {
		entry, ok := ParseLine(scanner.Text())
		if ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.IOError("failed to scan batch input", err)
	}

	return entries, nil
}

// ParseLine parses a single line. It returns false for lines that do not
// hold an entry.
func ParseLine(line string) (domain.Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return domain.Entry{}, false
	}

	var word, reading, meaning string
	parts := strings.SplitN(line, "=", 3)
	switch len(parts) {
	case 1:
		word = parts[0]
	case 2:
		word, meaning = parts[0], parts[1]
	default:
		word, reading, meaning = parts[0], parts[1], parts[2]
	}

	entry, err := domain.NewEntry(word, reading, meaning)
	if err != nil {
		return domain.Entry{}, false
	}
	return entry, true
}
