package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const defaultJPEGQuality = 85

// cliOptions collects everything read from flags and arguments.
type cliOptions struct {
	Source     string
	Name       string
	OutputDir  string
	Preview    string
	PreviewSet bool

	FontSize int
	FontPath string
	NoBorder bool

	Force           bool
	DryRun          bool
	ContinueOnError bool
	Verify          bool

	MaxPageWidth int
	JPEGQuality  int

	JSON       bool
	NoProgress bool

	Logger *slog.Logger
}

// readCLIOptions validates the parsed flags and assembles cliOptions,
// including the logger. It never prompts; the interactive source prompt
// happens later so flag validation stays non-blocking.
func readCLIOptions(cmd *cobra.Command, args []string) (cliOptions, error) {
	flags := cmd.Flags()
	var opts cliOptions

	if len(args) > 0 {
		opts.Source = args[0]
	}
	opts.Name, _ = flags.GetString("name")
	opts.OutputDir, _ = flags.GetString("output-dir")
	opts.Preview, _ = flags.GetString("preview")
	opts.PreviewSet = flags.Changed("preview")
	opts.FontSize, _ = flags.GetInt("font-size")
	opts.FontPath, _ = flags.GetString("font")
	opts.NoBorder, _ = flags.GetBool("no-border")
	opts.Force, _ = flags.GetBool("force")
	opts.DryRun, _ = flags.GetBool("dry-run")
	opts.ContinueOnError, _ = flags.GetBool("continue-on-error")
	opts.MaxPageWidth, _ = flags.GetInt("max-page-width")
	opts.JPEGQuality, _ = flags.GetInt("jpeg-quality")
	opts.JSON, _ = flags.GetBool("json")
	opts.NoProgress, _ = flags.GetBool("no-progress")

	noVerify, _ := flags.GetBool("no-verify")
	opts.Verify = !noVerify

	if opts.FontSize <= 0 {
		return opts, fmt.Errorf("--font-size must be positive, got %d", opts.FontSize)
	}
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		return opts, fmt.Errorf("--jpeg-quality must be between 1 and 100, got %d", opts.JPEGQuality)
	}
	if opts.MaxPageWidth < 0 {
		return opts, fmt.Errorf("--max-page-width must not be negative, got %d", opts.MaxPageWidth)
	}
	if strings.ContainsAny(opts.Name, `/\`) {
		return opts, fmt.Errorf("--name must be a bare name without path separators, got %q", opts.Name)
	}

	logLevel, _ := flags.GetString("log-level")
	switch strings.ToLower(logLevel) {
	case "debug", "info", "warn", "error":
	default:
		return opts, fmt.Errorf("--log-level must be one of debug, info, warn, error; got %q", logLevel)
	}
	logFormat, _ := flags.GetString("log-format")
	switch strings.ToLower(logFormat) {
	case "text", "json":
	default:
		return opts, fmt.Errorf("--log-format must be text or json, got %q", logFormat)
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		logLevel = "debug"
	}
	opts.Logger = buildLogger(cmd.ErrOrStderr(), logLevel, logFormat)

	return opts, nil
}

// runPaths holds the fully resolved locations a run writes to.
type runPaths struct {
	source    string
	name      string
	outputDir string
	archive   string
}

// resolvePaths derives the archive name, output directory, and archive
// location from the source path and the optional overrides. The archive
// always lands next to the output directory.
func resolvePaths(source, name, outputDir string) (runPaths, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return runPaths{}, fmt.Errorf("failed to resolve source path: %w", err)
	}

	p := runPaths{source: abs, name: name}
	if p.name == "" {
		p.name = filepath.Base(abs)
	}
	p.outputDir = outputDir
	if p.outputDir == "" {
		p.outputDir = filepath.Join(filepath.Dir(abs), p.name+"_merged_comic")
	}
	if p.outputDir, err = filepath.Abs(p.outputDir); err != nil {
		return runPaths{}, fmt.Errorf("failed to resolve output path: %w", err)
	}
	p.archive = filepath.Join(filepath.Dir(p.outputDir), p.name+".cbz")
	return p, nil
}

// promptSource asks for the source directory on standard input.
func promptSource(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter the path of the comic: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read source path: %w", err)
	}
	source := strings.TrimSpace(line)
	if source == "" {
		return "", errors.New("no source directory given")
	}
	return source, nil
}
