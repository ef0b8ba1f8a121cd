package session

import (
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal/archive"
	"codeberg.org/snonux/wordcycle/internal/batch"
	"codeberg.org/snonux/wordcycle/internal/domain"
	"codeberg.org/snonux/wordcycle/internal/settings"
	"codeberg.org/snonux/wordcycle/internal/vocab"
)

// AddWord appends a new entry and saves the word file. The first word
// added to an empty list is shown at once.
func (s *Session) AddWord(word, reading, meaning string) (domain.Entry, error) {
	entry, err := domain.NewEntry(word, reading, meaning)
	if err != nil {
		return domain.Entry{}, err
	}

	current := s.currentID()
	index := s.engine.Index()
	if err := s.words.Append(entry); err != nil {
		return domain.Entry{}, err
	}

	s.reset(current, index)
	return entry, nil
}

// DeleteWords removes the entries with the given identities and returns how
// many were removed. When the shown entry is deleted the index is clamped
// to the end of the shorter list.
func (s *Session) DeleteWords(ids []string) (int, error) {
	current := s.currentID()
	index := s.engine.Index()

	removed, err := s.words.Delete(domain.IDSet(ids...))
	if err != nil || removed == 0 {
		return 0, err
	}

	s.reset(current, index)
	return removed, nil
}

// ImportFile replaces the word list with the contents of path and returns
// the number of entries loaded. A .csv file becomes the active word file.
// Any other file is read as plain text and written to the default word
// file, whose previous contents are archived first. On failure nothing
// changes.
func (s *Session) ImportFile(path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, domain.IOError("failed to resolve import path", err)
	}

	if strings.EqualFold(filepath.Ext(abs), ".csv") {
		return s.importCSV(abs)
	}
	return s.importText(abs)
}

func (s *Session) importCSV(path string) (int, error) {
	entries, err := vocab.Load(path)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, wrapPath(path, errNoWords)
	}

	if err := s.recordWordFile(path); err != nil {
		return 0, err
	}

	s.replace(path, entries)
	return len(entries), nil
}

func (s *Session) importText(path string) (int, error) {
	entries, err := batch.ReadBatchFile(path)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, wrapPath(path, errNoWords)
	}

	// Record the setting before touching the word files.
	previous := s.settings.Config().WordFile
	if err := s.recordWordFile(s.defaultWordFile); err != nil {
		return 0, err
	}

	if err := s.writeDefaultWordFile(entries); err != nil {
		s.restoreWordFileSetting(previous)
		return 0, err
	}

	s.replace(s.defaultWordFile, entries)
	return len(entries), nil
}

// writeDefaultWordFile archives the default word file, if any, and
// overwrites it with entries.
func (s *Session) writeDefaultWordFile(entries []domain.Entry) error {
	archived, err := archive.ArchiveWordFile(s.defaultWordFile)
	switch {
	case err == nil:
		s.logger.Info("word file archived", zap.String("path", archived))
	case errors.Is(err, domain.ErrNotFound):
	default:
		return err
	}
	return vocab.Save(s.defaultWordFile, entries)
}

func (s *Session) restoreWordFileSetting(previous string) {
	if s.settings.Config().WordFile == previous {
		return
	}
	if _, err := s.settings.Update(settings.Patch{WordFile: &previous}); err != nil {
		s.logger.Warn("failed to restore word file setting",
			zap.String("path", previous), zap.Error(err))
	}
}

// recordWordFile saves path as the configured word file. An empty setting
// already means the default word file and is left alone.
func (s *Session) recordWordFile(path string) error {
	current := s.settings.Config().WordFile
	if current == path || (current == "" && path == s.defaultWordFile) {
		return nil
	}
	_, err := s.settings.Update(settings.Patch{WordFile: &path})
	return err
}

func (s *Session) replace(path string, entries []domain.Entry) {
	s.words.SetPath(path)
	s.words.Replace(entries, true)
	s.engine.Reset(0)
	s.logger.Info("word list imported", zap.String("path", path), zap.Int("entries", len(entries)))
}

// ArchiveWordFile copies the active word file into the archive directory.
func (s *Session) ArchiveWordFile() (string, error) {
	return archive.ArchiveWordFile(s.words.Path())
}
