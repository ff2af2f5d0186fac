package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_ReadFile_Nonexistent(t *testing.T) {
	p := NewOSFileSystem()

	_, err := p.ReadFile(filepath.Join(t.TempDir(), "missing.sql"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestOSFileSystem_WriteFile_CreatesParents(t *testing.T) {
	dir := t.TempDir()
	p := NewOSFileSystem()
	target := filepath.Join(dir, "backend", "migrations", "x", "up.sql")

	if err := p.WriteFile(target, []byte("SELECT 1;")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	if string(content) != "SELECT 1;" {
		t.Errorf("content = %q, want %q", content, "SELECT 1;")
	}
}

func TestOSFileSystem_ReadDir(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "2025-01-01-000000_a"), 0755)
	os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0644)

	p := NewOSFileSystem()
	entries, err := p.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ReadDir() returned %d entries, want 2", len(entries))
	}
	if entries[0].Name() != "2025-01-01-000000_a" || !entries[0].IsDir() {
		t.Errorf("entries[0] = %s (dir=%v), want 2025-01-01-000000_a directory", entries[0].Name(), entries[0].IsDir())
	}
}

func TestOSFileSystem_ReadDir_Nonexistent(t *testing.T) {
	p := NewOSFileSystem()

	_, err := p.ReadDir(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Error("ReadDir(nonexistent) should return error")
	}
}

func TestOSFileSystem_Stat(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "schema.sql")
	os.WriteFile(filePath, []byte("content"), 0644)

	info, err := NewOSFileSystem().Stat(filePath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Name() != "schema.sql" || info.Size() != 7 {
		t.Errorf("Stat() = %s/%d, want schema.sql/7", info.Name(), info.Size())
	}
}
