package fileutil

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")

	content := []byte("fake page image bytes")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old longer content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("dst = %q, want %q", got, "new")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")

	content := bytes.Repeat([]byte("page-bytes-"), 4096)
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := CopyFileVerified(src, dst)
	if err != nil {
		t.Fatalf("CopyFileVerified() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Fatal("content mismatch after verified copy")
	}

	want, err := HashFile(src)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if sum != want {
		t.Fatalf("digest = %x, want %x", sum, want)
	}
}

func TestCopyFileVerified_DetectsTruncatedCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	if err := os.WriteFile(src, []byte("bytes that should survive the copy"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A destination aliasing the source truncates it on open, so the
	// copy observes fewer bytes than the source had.
	dst := filepath.Join(dir, "dst.png")
	if err := os.Symlink(src, dst); err != nil {
		t.Fatalf("Symlink() error = %v", err)
	}

	_, err := CopyFileVerified(src, dst)
	if err == nil {
		t.Fatal("expected error for truncated copy")
	}
	if !strings.Contains(err.Error(), "mismatch") {
		t.Fatalf("CopyFileVerified() error = %v, want a mismatch report", err)
	}
	if _, err := os.Lstat(dst); !errors.Is(err, fs.ErrNotExist) {
		t.Error("failed copy left the destination behind")
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := CopyFileVerified(filepath.Join(dir, "absent"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestHashFile_MatchesHashReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob")
	content := []byte("identical bytes hash identically")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	fromReader, err := HashReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("HashReader() error = %v", err)
	}
	if fromFile != fromReader {
		t.Fatalf("HashFile = %x, HashReader = %x", fromFile, fromReader)
	}
}

func TestHashFile_Missing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "ghost")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
