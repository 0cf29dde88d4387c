package workspace

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestdataDir returns the testdata directory next to the calling test file.
func TestdataDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// Extract unpacks the txtar archive at path into a fresh temp directory and
// returns that directory.
func Extract(t *testing.T, path string) string {
	t.Helper()
	archive, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return Unpack(t, archive)
}

// Unpack writes every file of archive under a fresh temp directory.
func Unpack(t *testing.T, archive *txtar.Archive) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range archive.Files {
		safeName(t, f.Name)
		dst := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			t.Fatalf("mkdir for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(dst, f.Data, 0o600); err != nil {
			t.Fatalf("write %s: %v", f.Name, err)
		}
	}
	return dir
}

func safeName(t *testing.T, name string) {
	t.Helper()
	if name == "" || strings.Contains(name, "..") || filepath.IsAbs(name) || strings.Contains(name, `\`) {
		t.Fatalf("invalid archive file name %q", name)
	}
}
