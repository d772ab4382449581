package cbz

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jsthoang/ComicMerge/internal/fileutil"
)

// ErrVerifyMismatch reports that archive contents do not match the
// directory they were packed from.
var ErrVerifyMismatch = errors.New("cbz: archive does not match directory")

// List returns the archive's entry names in stored order.
func List(archivePath string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// Verify re-opens the archive at archivePath and checks it against dir:
// the entry set must equal the directory's files and every entry must
// hash identically to its source. A pass means the pack round-trips.
func Verify(archivePath, dir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}
	if len(entries) != len(zr.File) {
		return fmt.Errorf("%w: duplicate entry names", ErrVerifyMismatch)
	}

	seen := 0
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		entry, ok := entries[name]
		if !ok {
			return fmt.Errorf("%w: entry %s missing from archive", ErrVerifyMismatch, name)
		}
		seen++

		want, err := fileutil.HashFile(p)
		if err != nil {
			return err
		}
		got, err := hashEntry(entry)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%w: entry %s differs", ErrVerifyMismatch, name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if seen != len(entries) {
		return fmt.Errorf("%w: archive has %d entries not present in directory", ErrVerifyMismatch, len(entries)-seen)
	}
	return nil
}

func hashEntry(f *zip.File) (uint64, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open entry %s: %w", f.Name, err)
	}
	defer rc.Close()
	return fileutil.HashReader(rc)
}
