package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jsthoang/ComicMerge/internal/cbz"
	"github.com/jsthoang/ComicMerge/internal/merge"
	"github.com/jsthoang/ComicMerge/internal/titlecard"
)

// runMerge executes the full pipeline: merge chapters into the output
// directory, pack it into the archive, verify, and report.
func runMerge(cmd *cobra.Command, opts cliOptions) error {
	source := opts.Source
	if source == "" {
		prompted, err := promptSource(cmd)
		if err != nil {
			return err
		}
		source = prompted
	}
	paths, err := resolvePaths(source, opts.Name, opts.OutputDir)
	if err != nil {
		return err
	}

	mergeOpts := merge.Options{
		SourceDir:       paths.source,
		OutputDir:       paths.outputDir,
		FontSize:        opts.FontSize,
		FontPath:        opts.FontPath,
		NoBorder:        opts.NoBorder,
		Force:           opts.Force,
		ContinueOnError: opts.ContinueOnError,
		Verify:          opts.Verify,
		MaxPageWidth:    opts.MaxPageWidth,
		JPEGQuality:     opts.JPEGQuality,
		Logger:          opts.Logger,
	}

	var bar *progressbar.ProgressBar
	if !opts.NoProgress && isTerminal(cmd.ErrOrStderr()) {
		mergeOpts.Progress = func(done, total int, chapter string) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "merging")
			}
			_ = bar.Add(1)
		}
	}

	merger, err := merge.NewMerger(mergeOpts)
	if err != nil {
		return err
	}
	if opts.DryRun {
		return runDryRun(cmd, merger, opts, paths)
	}

	opts.Logger.Info("merging",
		slog.String("source", paths.source),
		slog.String("output", paths.outputDir))

	report, runErr := merger.Run()
	if bar != nil {
		_ = bar.Finish()
	}
	if runErr != nil {
		if errors.Is(runErr, merge.ErrSourceNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "Source directory does not exist: %s\n", paths.source)
			return nil
		}
		if errors.Is(runErr, merge.ErrOutputDirNotEmpty) {
			return fmt.Errorf("%w (pass --force to replace it)", runErr)
		}
		if report == nil {
			return runErr
		}
		// ContinueOnError: pack what was produced, report failures last.
		opts.Logger.Warn("merge finished with failures", slog.Int("failures", report.Failures))
	}

	packed, err := cbz.Pack(report.OutputDir, paths.archive)
	if err != nil {
		return fmt.Errorf("failed to pack archive: %w", err)
	}
	report.Archive = packed.Archive
	report.ArchiveBytes = packed.Bytes

	if opts.Verify {
		if err := cbz.Verify(paths.archive, report.OutputDir); err != nil {
			return err
		}
		report.Verified = true
		opts.Logger.Debug("archive verified", slog.String("archive", paths.archive))
	}

	if opts.JSON {
		if err := writeJSON(cmd, report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return runErr
	}
	printSummary(cmd, report)
	return runErr
}

// runDryRun prints the plan without touching the filesystem.
func runDryRun(cmd *cobra.Command, merger *merge.Merger, opts cliOptions, paths runPaths) error {
	plan, err := merger.Plan()
	if err != nil {
		if errors.Is(err, merge.ErrSourceNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "Source directory does not exist: %s\n", paths.source)
			return nil
		}
		return err
	}
	if opts.JSON {
		return writeJSON(cmd, plan)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderPlanTable(plan))
	fmt.Fprintf(out, "%d chapters, %d items -> %s\n", len(plan.Chapters), plan.Items, paths.archive)
	return nil
}

// runPreview renders a single title card to stdout as PNG.
func runPreview(cmd *cobra.Command, opts cliOptions) error {
	out := cmd.OutOrStdout()
	if isTerminal(out) {
		return errors.New("refusing to write PNG bytes to a terminal, redirect stdout to a file")
	}

	renderer := titlecard.NewRenderer(titlecard.Options{
		FontSize: opts.FontSize,
		FontPath: opts.FontPath,
		NoBorder: opts.NoBorder,
		Logger:   opts.Logger,
	})
	if err := renderer.EncodePNG(out, opts.Preview); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	return nil
}

func printSummary(cmd *cobra.Command, report *merge.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Merged %d chapters (%d title cards, %d pages) in %s\n",
		len(report.Chapters), report.Titles, report.Pages,
		report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "Pages:   %s\n", report.OutputDir)

	suffix := ""
	if report.Verified {
		suffix = ", verified"
	}
	fmt.Fprintf(out, "Archive: %s (%s%s)\n",
		report.Archive, humanize.Bytes(uint64(report.ArchiveBytes)), suffix)

	if report.Failures > 0 {
		fmt.Fprintf(out, "Skipped: %d failed items\n", report.Failures)
	}
}
