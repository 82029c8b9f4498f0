package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func setupSearchDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string][]byte{
		"hoadon_001.pdf": []byte("pdf content"),
		"hoadon_002.pdf": []byte("pdf content"),
		"receipt.pdf":    []byte("pdf content"),
		"notes.txt":      []byte("text"),
		"empty.pdf":      nil, // zero-byte files are skipped
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestSearch_SearchDirectory(t *testing.T) {
	dir := setupSearchDir(t)
	s := NewSearch(100 * 1024 * 1024)

	result, err := s.SearchDirectory(dir, "")
	if err != nil {
		t.Fatalf("SearchDirectory() error = %v", err)
	}
	if result.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", result.TotalCount)
	}
	for _, f := range result.Files {
		if f.Name == "notes.txt" || f.Name == "empty.pdf" {
			t.Errorf("unexpected file in results: %s", f.Name)
		}
	}
}

func TestSearch_SearchDirectoryWithQuery(t *testing.T) {
	dir := setupSearchDir(t)
	s := NewSearch(100 * 1024 * 1024)

	result, err := s.SearchDirectory(dir, "HOADON")
	if err != nil {
		t.Fatalf("SearchDirectory() error = %v", err)
	}
	if result.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", result.TotalCount)
	}
}

func TestSearch_SearchDirectoryErrors(t *testing.T) {
	s := NewSearch(1024)

	if _, err := s.SearchDirectory("", ""); err == nil {
		t.Error("expected error for empty directory")
	}
	if _, err := s.SearchDirectory(filepath.Join(t.TempDir(), "missing"), ""); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSearch_FindPDFsInDirectory(t *testing.T) {
	dir := setupSearchDir(t)
	files, err := NewSearch(100 * 1024 * 1024).FindPDFsInDirectory(dir)
	if err != nil {
		t.Fatalf("FindPDFsInDirectory() error = %v", err)
	}
	if len(files) != 3 {
		t.Errorf("len(files) = %d, want 3", len(files))
	}
}
