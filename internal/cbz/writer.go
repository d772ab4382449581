// Package cbz packs a merged page directory into a comic book archive,
// a plain zip whose entries are stored in reading order.
package cbz

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"github.com/jsthoang/ComicMerge/internal/naturalsort"
)

// PackResult describes a written archive.
type PackResult struct {
	Archive string `json:"archive"`
	Entries int    `json:"entries"`
	Bytes   int64  `json:"bytes"`
}

// Pack writes every file under dir into a fresh archive at archivePath,
// truncating any existing file there. Entries carry forward-slash paths
// relative to dir and are ordered naturally within each directory
// level, files before subdirectories.
func Pack(dir, archivePath string) (*PackResult, error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	// Pages are compressed image data already; bias deflate for speed.
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	p := &packer{zw: zw}
	if err := p.addDir(dir, ""); err != nil {
		zw.Close()
		out.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	return &PackResult{Archive: archivePath, Entries: p.entries, Bytes: info.Size()}, nil
}

type packer struct {
	zw      *zip.Writer
	entries int
}

func (p *packer) addDir(dir, rel string) error {
	list, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files, subdirs []string
	for _, entry := range list {
		if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
		} else {
			files = append(files, entry.Name())
		}
	}
	naturalsort.Strings(files)
	naturalsort.Strings(subdirs)

	for _, name := range files {
		if err := p.addFile(filepath.Join(dir, name), path.Join(rel, name)); err != nil {
			return err
		}
	}
	for _, name := range subdirs {
		if err := p.addDir(filepath.Join(dir, name), path.Join(rel, name)); err != nil {
			return err
		}
	}
	return nil
}

func (p *packer) addFile(src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	w, err := p.zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", name, err)
	}
	p.entries++
	return nil
}
