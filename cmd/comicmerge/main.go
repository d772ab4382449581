package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsthoang/ComicMerge/internal/titlecard"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comicmerge [SOURCE]",
		Short: "Merge comic chapter folders into a single CBZ archive",
		Long: `comicmerge consolidates a directory of per-chapter image folders into
one comic book archive. Every chapter gets a generated title page, all
pages are renumbered into a single reading order, and the result is
packed into a .cbz beside the source directory.

When SOURCE is omitted, comicmerge asks for it on standard input.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd, args)
			if err != nil {
				return err
			}
			if opts.PreviewSet {
				return runPreview(cmd, opts)
			}
			return runMerge(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.Int("font-size", titlecard.DefaultFontSize, "Title card font size in points")
	flags.String("font", "", "Path to a TTF font for title cards")
	flags.Bool("no-border", false, "Skip the border around title cards")
	flags.StringP("name", "n", "", "Archive base name (default: source directory name)")
	flags.StringP("output-dir", "o", "", "Merged page directory (default: <name>_merged_comic beside the source)")
	flags.String("preview", "", "Render a title card for the given caption to stdout as PNG and exit")
	flags.BoolP("force", "f", false, "Replace a non-empty output directory")
	flags.Bool("dry-run", false, "Show the merge plan without writing anything")
	flags.Bool("continue-on-error", false, "Skip failed items instead of aborting")
	flags.Bool("no-verify", false, "Skip hash verification of page copies and the packed archive")
	flags.Int("max-page-width", 0, "Downscale pages wider than this many pixels (0 disables)")
	flags.Int("jpeg-quality", defaultJPEGQuality, "JPEG quality for downscaled pages")
	flags.Bool("json", false, "Emit the run report as JSON")
	flags.Bool("no-progress", false, "Disable the progress bar")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.BoolP("verbose", "v", false, "Shorthand for --log-level debug")

	cmd.MarkFlagsMutuallyExclusive("preview", "dry-run")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "comicmerge:", err)
		os.Exit(1)
	}
}
