package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"intro.anima", "intro.dvm"},
		{"dir/intro", "dir/intro.dvm"},
		{"a.b/c.txt", "a.b/c.dvm"},
	}
	for _, tc := range tests {
		if got := DefaultOutputPath(tc.in, ".dvm"); got != tc.want {
			t.Errorf("DefaultOutputPath(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.dvm")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("new")) {
		t.Errorf("content = %q; want %q", got, "new")
	}
	if _, err := os.Stat(TempPath(path)); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.dvm")
	if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
