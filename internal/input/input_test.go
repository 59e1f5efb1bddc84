package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.sql")
	if err := os.WriteFile(path, []byte("SELECT 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path, "SQL query")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "SELECT 1\n" {
		t.Errorf("content = %q", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.sql"), "SQL query"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sql")
	if err := os.WriteFile(path, []byte("  \n\t\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Read(path, "SQL query")
	if err == nil {
		t.Fatal("expected error for blank input")
	}
	if !strings.Contains(err.Error(), "empty SQL query input") {
		t.Errorf("error = %v", err)
	}
}
