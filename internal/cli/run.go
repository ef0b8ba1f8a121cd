package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal"
	"codeberg.org/snonux/wordcycle/internal/session"
)

// RunActions performs the headless actions requested by flags against a
// session opened on the data directory. Output goes to out.
func RunActions(flags *Flags, logger *zap.Logger, out io.Writer) error {
	sess, err := session.Open(session.Options{
		DataDir:   flags.DataDir,
		WordFile:  flags.WordFile,
		Logger:    logger,
		KeepOrder: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer sess.Close()

	// Handle --archive flag
	if flags.Archive {
		path, err := sess.ArchiveWordFile()
		if err != nil {
			return fmt.Errorf("failed to archive word file: %w", err)
		}
		fmt.Fprintf(out, "Word file archived to: %s\n", path)
	}

	// Handle --import flag
	if flags.ImportFile != "" {
		n, err := sess.ImportFile(flags.ImportFile)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", flags.ImportFile, err)
		}
		fmt.Fprintf(out, "Imported %d words into %s\n", n, sess.WordFile())
	}

	// Handle --list flag
	if flags.ListWords {
		if err := listWords(sess, out); err != nil {
			return err
		}
	}

	// Generate Anki file if requested
	if flags.GenerateAnki {
		outputPath := flags.OutputPath
		if outputPath == "" {
			outputPath = DefaultExportPath(flags.DeckName, flags.AnkiCSV)
		}
		n, err := sess.ExportAnki(outputPath, flags.DeckName, flags.AnkiCSV)
		if err != nil {
			return fmt.Errorf("failed to generate Anki file: %w", err)
		}
		fmt.Fprintf(out, "Anki file with %d cards created: %s\n", n, outputPath)
	}

	return nil
}

// DefaultExportPath names the export after the deck.
func DefaultExportPath(deckName string, asCSV bool) string {
	ext := ".apkg"
	if asCSV {
		ext = ".csv"
	}
	return filepath.Join(".", internal.SanitizeFilename(deckName)+ext)
}

func listWords(sess *session.Session, out io.Writer) error {
	entries := sess.Entries()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WORD\tREADING\tMEANING")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Word, e.Reading, e.Meaning)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to print word list: %w", err)
	}

	fmt.Fprintf(out, "\n%d words in %s\n", len(entries), sess.WordFile())
	return nil
}
