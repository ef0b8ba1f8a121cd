package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateDataDir creates a temporary data directory laid out like the
// application's state directory.
func CreateDataDir(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "state", "wordcycle")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data directory %s: %v", dataDir, err)
	}

	return dataDir
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// WriteWordFile writes a word CSV with the given header and rows.
// Each row is a comma-joined line written verbatim.
func WriteWordFile(t *testing.T, path, header string, rows ...string) {
	t.Helper()

	lines := append([]string{header}, rows...)
	CreateTestFile(t, path, []byte(strings.Join(lines, "\n")+"\n"))
}

// BlockedPath returns a path whose parent is a regular file, so any
// attempt to create or write it fails regardless of privileges.
func BlockedPath(t *testing.T, name string) string {
	t.Helper()

	blocker := filepath.Join(t.TempDir(), "blocker")
	CreateTestFile(t, blocker, []byte("not a directory"))
	return filepath.Join(blocker, "sub", name)
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !bytes.Equal(actual, expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
