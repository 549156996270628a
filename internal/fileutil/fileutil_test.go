package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileExclusive(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "note.md")

	if err := WriteFileExclusive(dst, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello world" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestWriteFileExclusiveRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "note.md")
	if err := os.WriteFile(dst, []byte("user edits"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteFileExclusive(dst, []byte("generated"), 0o644)
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "user edits" {
		t.Fatalf("existing file was modified: %q", got)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	ok, err := Exists(dir)
	if err != nil || !ok {
		t.Fatalf("expected temp dir to exist, got %v %v", ok, err)
	}
	ok, err = Exists(filepath.Join(dir, "missing"))
	if err != nil || ok {
		t.Fatalf("expected missing path to be absent, got %v %v", ok, err)
	}
}

func TestAppendFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(dst, []byte("# Note\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := AppendFile(dst, []byte("\nappended\n")); err != nil {
		t.Fatalf("AppendFile: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "# Note\n\nappended\n" {
		t.Fatalf("unexpected contents %q", got)
	}
}

func TestAppendFileDoesNotCreate(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing.md")
	if err := AppendFile(dst, []byte("x")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := os.Stat(dst); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("AppendFile created %s", dst)
	}
}
