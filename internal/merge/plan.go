package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jsthoang/ComicMerge/internal/naturalsort"
)

// Plan describes the full output sequence a run would produce: every
// chapter in natural order with its page index range.
type Plan struct {
	SourceDir string        `json:"source_dir"`
	OutputDir string        `json:"output_dir"`
	Chapters  []ChapterPlan `json:"chapters"`
	Items     int           `json:"items"`
}

// ChapterPlan is one chapter's slot in the output sequence. FirstIndex
// is the title card's page index; pages follow through LastIndex.
type ChapterPlan struct {
	Name       string   `json:"name"`
	Index      int      `json:"index"`
	TitleFile  string   `json:"title_file"`
	FirstIndex int      `json:"first_index"`
	LastIndex  int      `json:"last_index"`
	PageCount  int      `json:"page_count"`
	Pages      []string `json:"-"`
}

// Plan scans the source library and computes the output sequence
// without touching the filesystem beyond reads. Chapters are the
// immediate subdirectories in natural order; their regular files become
// pages in natural order.
func (m *Merger) Plan() (*Plan, error) {
	src := filepath.Clean(m.opts.SourceDir)
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		return nil, fmt.Errorf("failed to stat source library: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source library %s is not a directory", src)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read source library: %w", err)
	}
	var chapters []string
	for _, entry := range entries {
		if !entry.IsDir() {
			m.logger.Debug("ignoring non-directory entry", slog.String("name", entry.Name()))
			continue
		}
		chapters = append(chapters, entry.Name())
	}
	naturalsort.Strings(chapters)

	plan := &Plan{
		SourceDir: src,
		OutputDir: filepath.Clean(m.opts.OutputDir),
	}
	index := 1
	for i, name := range chapters {
		pages, err := m.listPages(filepath.Join(src, name))
		if err != nil {
			return nil, err
		}
		ch := ChapterPlan{
			Name:       name,
			Index:      i + 1,
			TitleFile:  titleFileName(index, name),
			FirstIndex: index,
			LastIndex:  index + len(pages),
			PageCount:  len(pages),
			Pages:      pages,
		}
		index = ch.LastIndex + 1
		plan.Chapters = append(plan.Chapters, ch)
	}
	plan.Items = index - 1
	return plan, nil
}

// listPages returns the chapter's page filenames in natural order.
// Nested directories are not descended into.
func (m *Merger) listPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapter %s: %w", dir, err)
	}
	var pages []string
	for _, entry := range entries {
		if entry.IsDir() {
			m.logger.Warn("skipping nested directory",
				slog.String("chapter", filepath.Base(dir)),
				slog.String("name", entry.Name()))
			continue
		}
		pages = append(pages, entry.Name())
	}
	naturalsort.Strings(pages)
	return pages, nil
}
