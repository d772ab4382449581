// Package merge drives chapter consolidation: it renders one title card
// per chapter and copies every page into a single flat directory of
// densely numbered files, ready for archive packing.
package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jsthoang/ComicMerge/internal/fileutil"
	"github.com/jsthoang/ComicMerge/internal/titlecard"
)

var (
	// ErrSourceNotFound reports that the source library directory does
	// not exist.
	ErrSourceNotFound = errors.New("merge: source library not found")

	// ErrOutputDirNotEmpty reports that the output directory already
	// holds files and Force was not set.
	ErrOutputDirNotEmpty = errors.New("merge: output directory not empty")

	// ErrOutputOverlapsSource reports that the output directory is the
	// source library, lies inside it, or contains it.
	ErrOutputOverlapsSource = errors.New("merge: output directory overlaps source library")
)

// Options holds options for a merge run.
type Options struct {
	SourceDir string
	OutputDir string

	// Title card appearance.
	FontSize int
	FontPath string
	NoBorder bool

	// Force replaces a non-empty output directory instead of refusing.
	Force bool

	// ContinueOnError skips failed items instead of aborting, returning
	// the collected failures after the run.
	ContinueOnError bool

	// Verify hashes both sides of every verbatim page copy.
	Verify bool

	// MaxPageWidth, when positive, downscales wider pages on copy.
	MaxPageWidth int
	JPEGQuality  int

	Logger *slog.Logger

	// Progress, when set, is called after each chapter completes.
	Progress func(done, total int, chapter string)
}

// Merger executes the chapter merge described by its Options.
type Merger struct {
	opts   Options
	logger *slog.Logger
	titles *titlecard.Renderer
	pages  *PageOptimizer
}

// NewMerger validates opts and builds a Merger, resolving the title
// card font once up front. Source and output directories are resolved
// to absolute paths; an output directory that is the source library,
// lies inside it, or contains it is rejected, since Force removes the
// output directory wholesale.
func NewMerger(opts Options) (*Merger, error) {
	if opts.SourceDir == "" {
		return nil, errors.New("merge: source directory is required")
	}
	if opts.OutputDir == "" {
		return nil, errors.New("merge: output directory is required")
	}
	src, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	out, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if containsPath(src, out) || containsPath(out, src) {
		return nil, fmt.Errorf("%w: source %s, output %s", ErrOutputOverlapsSource, src, out)
	}
	opts.SourceDir = src
	opts.OutputDir = out

	base := opts.Logger
	if base == nil {
		base = slog.New(slog.DiscardHandler)
	}

	m := &Merger{
		opts:   opts,
		logger: base.With(slog.String("component", "merge")),
		titles: titlecard.NewRenderer(titlecard.Options{
			FontSize: opts.FontSize,
			FontPath: opts.FontPath,
			NoBorder: opts.NoBorder,
			Logger:   base,
		}),
	}
	if opts.MaxPageWidth > 0 {
		m.pages = NewPageOptimizer(opts.MaxPageWidth, opts.JPEGQuality)
	}
	return m, nil
}

// Run executes the merge. Under the default policy the first failed
// item aborts the run with a nil report, leaving partial output behind.
// With ContinueOnError the report covers everything emitted and the
// joined item failures come back as the error.
func (m *Merger) Run() (*Report, error) {
	start := time.Now()

	plan, err := m.Plan()
	if err != nil {
		return nil, err
	}
	if err := m.prepareOutputDir(); err != nil {
		return nil, err
	}

	report := &Report{
		SourceDir: plan.SourceDir,
		OutputDir: plan.OutputDir,
	}
	index := 1
	var failures []error
	for i, ch := range plan.Chapters {
		result, next, errs := m.mergeChapter(ch, index)
		if len(errs) > 0 && !m.opts.ContinueOnError {
			return nil, errs[0]
		}
		failures = append(failures, errs...)
		index = next

		report.Chapters = append(report.Chapters, result)
		if result.TitleFile != "" {
			report.Titles++
		}
		report.Pages += result.Pages
		if m.opts.Progress != nil {
			m.opts.Progress(i+1, len(plan.Chapters), ch.Name)
		}
	}

	report.Items = report.Titles + report.Pages
	report.Failures = len(failures)
	report.Elapsed = time.Since(start)

	if len(failures) > 0 {
		return report, fmt.Errorf("merge finished with %d failed items: %w", len(failures), errors.Join(failures...))
	}
	return report, nil
}

// mergeChapter emits the title card and pages for one chapter starting
// at the given page index. It returns the next free index and any item
// failures; under the abort policy the first failure ends the chapter.
func (m *Merger) mergeChapter(ch ChapterPlan, index int) (ChapterResult, int, []error) {
	result := ChapterResult{Name: ch.Name, Index: ch.Index}
	var errs []error

	fail := func(err error) bool {
		errs = append(errs, err)
		if !m.opts.ContinueOnError {
			return true
		}
		m.logger.Warn("skipping item", slog.String("chapter", ch.Name), slog.Any("error", err))
		result.Errors = append(result.Errors, err.Error())
		return false
	}

	titleName := titleFileName(index, ch.Name)
	if err := m.titles.RenderFile(ch.Name, filepath.Join(m.opts.OutputDir, titleName)); err != nil {
		if fail(fmt.Errorf("failed to render title card for chapter %q: %w", ch.Name, err)) {
			return result, index, errs
		}
	} else {
		result.TitleFile = titleName
		index++
	}

	for _, page := range ch.Pages {
		src := filepath.Join(m.opts.SourceDir, ch.Name, page)
		dst := filepath.Join(m.opts.OutputDir, pageFileName(index, page))
		if err := m.copyPage(src, dst); err != nil {
			if fail(fmt.Errorf("failed to copy page %s: %w", src, err)) {
				return result, index, errs
			}
			continue
		}
		index++
		result.Pages++
	}

	m.logger.Info("chapter merged",
		slog.String("chapter", ch.Name),
		slog.Int("pages", result.Pages))
	return result, index, errs
}

// copyPage moves one page into the output directory. The optimizer path
// re-encodes oversized pages; otherwise bytes are copied verbatim,
// hash-checked when Verify is on.
func (m *Merger) copyPage(src, dst string) error {
	if m.pages != nil {
		result, err := m.pages.OptimizeFile(src, dst)
		if err != nil {
			return err
		}
		if result.Warning != "" {
			m.logger.Warn("page kept verbatim", slog.String("page", src), slog.String("reason", result.Warning))
		} else if result.Resized {
			m.logger.Debug("page downscaled",
				slog.String("page", src),
				slog.Int("width", result.Width),
				slog.Int("height", result.Height))
		}
		return nil
	}
	if m.opts.Verify {
		_, err := fileutil.CopyFileVerified(src, dst)
		return err
	}
	return fileutil.CopyFile(src, dst)
}

// prepareOutputDir creates the output directory, replacing a non-empty
// one only when Force is set.
func (m *Merger) prepareOutputDir() error {
	out := m.opts.OutputDir
	entries, err := os.ReadDir(out)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// created below
	case err != nil:
		return fmt.Errorf("failed to read output directory: %w", err)
	case len(entries) == 0:
		return nil
	case !m.opts.Force:
		return fmt.Errorf("%w: %s", ErrOutputDirNotEmpty, out)
	default:
		m.logger.Info("replacing output directory", slog.String("dir", out))
		if err := os.RemoveAll(out); err != nil {
			return fmt.Errorf("failed to remove output directory: %w", err)
		}
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// containsPath reports whether child is parent itself or lies under
// it. Both paths must be absolute.
func containsPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func titleFileName(index int, chapter string) string {
	return fmt.Sprintf("%05d_00_%s.png", index, chapter)
}

func pageFileName(index int, page string) string {
	return fmt.Sprintf("%05d_%s", index, page)
}
