package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"codeberg.org/snonux/wordcycle/internal"
	"codeberg.org/snonux/wordcycle/internal/domain"
)

// Header is the fixed column order used when writing a word file.
var Header = []string{"word", "reading", "meaning"}

// Load reads a word file from disk.
// A missing file yields domain.ErrNotFound, a bad header domain.ErrParse.
func Load(path string) ([]domain.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("word file %s: %w", path, domain.ErrNotFound)
		}
		return nil, domain.IOError("open word file "+path, err)
	}
	defer file.Close()

	entries, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("word file %s: %w", path, err)
	}
	return entries, nil
}

// Read parses CSV word data. The header must name word, reading and
// meaning in any order; other columns are ignored. A leading byte order
// mark is tolerated. Rows with an empty word are skipped.
func Read(r io.Reader) ([]domain.Entry, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1 // short rows fall back to empty fields
	reader.LazyQuotes = true    // hand-edited files may carry stray quotes

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header, expected %s", domain.ErrParse, strings.Join(Header, ","))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrParse, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range Header {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: header must contain %s (missing %s)",
			domain.ErrParse, strings.Join(Header, ", "), strings.Join(missing, ", "))
	}

	var entries []domain.Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %w", domain.ErrParse, err)
		}

		field := func(name string) string {
			if i := columns[name]; i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		word := field("word")
		if word == "" {
			continue
		}
		entries = append(entries, domain.Entry{
			ID:      internal.NewEntryID(),
			Word:    word,
			Reading: field("reading"),
			Meaning: field("meaning"),
		})
	}

	return entries, nil
}

// Write encodes entries as CSV with a byte order mark and the fixed header.
func Write(w io.Writer, entries []domain.Entry) error {
	bomWriter := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	writer := csv.NewWriter(bomWriter)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.Word, e.Reading, e.Meaning}); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", e.Word, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return bomWriter.Close()
}

// Save writes entries to path, creating parent directories as needed.
// The file is replaced atomically so a failed write never truncates it.
func Save(path string, entries []domain.Entry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.IOError("create word file directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".words-*.csv")
	if err != nil {
		return domain.IOError("create temp word file", err)
	}
	tmpPath := tmp.Name()

	if err := Write(tmp, entries); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return domain.IOError("write word file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return domain.IOError("close word file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return domain.IOError("replace word file", err)
	}

	return nil
}
