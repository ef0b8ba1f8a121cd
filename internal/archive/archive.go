package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// now is replaced in tests.
var now = time.Now

// ArchiveWordFile copies the word file into an archive directory next to
// it, named <name>-YYYYMMDD-HHMMSS<ext>, and returns the copy's path.
// The original stays in place.
func ArchiveWordFile(path string) (string, error) {
	// Check if word file exists
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("word file does not exist: %s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return "", domain.IOError("failed to stat word file", err)
	}
	if info.IsDir() {
		return "", domain.IOError("failed to archive word file", fmt.Errorf("%s is a directory", path))
	}

	archiveDir := filepath.Join(filepath.Dir(path), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", domain.IOError("failed to create archive directory", err)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	stamp := now()

	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, stamp.Format("20060102-150405"), ext))
	dst, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		// Add microseconds to make it unique
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, stamp.Format("20060102-150405.000000"), ext))
		dst, err = os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	}
	if err != nil {
		return "", domain.IOError("failed to create archive file", err)
	}

	if err := copyInto(dst, path); err != nil {
		dst.Close()
		os.Remove(archivePath)
		return "", domain.IOError("failed to archive word file", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(archivePath)
		return "", domain.IOError("failed to archive word file", err)
	}

	return archivePath, nil
}

func copyInto(dst io.Writer, srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(dst, src)
	return err
}
