package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/idelchi/dupescan/internal/dupescan"
	"github.com/idelchi/dupescan/internal/logging"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

func help() {
	//nolint:forbidigo // Help output to console
	fmt.Println(heredoc.Doc(`
		dupescan finds duplicate files by content in a directory tree.

		Usage:

			dupescan [flags] [path]

		Positional Arguments:
		  path                   Directory to scan. Defaults to current directory if not specified.

		Files are first grouped by exact byte size, then colliding sizes are
		verified with a full content hash. Groups of two or more identical
		files are reported together with the space reclaimable by removing
		the extra copies.

		With --delete the tool prompts per group for the member to keep and
		removes the rest. Without it the scan is report-only and never
		touches the filesystem.

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		options    dupescan.Options
		minSizeStr string
		verbosity  int
	)

	allowedOutputs := []string{"table", "json"}

	pflag.StringVar(&minSizeStr, "min-size", "1KiB", "Minimum file size to consider (e.g. 4KiB, 1MB)")
	pflag.BoolVar(&options.Delete, "delete", false, "Interactively delete duplicates, keeping one file per group")
	pflag.StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	pflag.StringSliceVarP(&options.Excludes, "exclude", "e", []string{}, "Regex patterns to exclude")
	pflag.IntVarP(&options.Workers, "workers", "w", 0, "Hash worker count (0 = number of CPUs)")
	pflag.CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	pflag.BoolVar(&options.Version, "version", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if options.Version {
		//nolint:forbidigo // Version output to console
		fmt.Println(c.version)

		return nil
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	if options.Delete && options.Output == "json" {
		return errors.New("--delete cannot be combined with JSON output")
	}

	if pflag.NArg() == 0 {
		options.Path = "."
	} else {
		options.Path = pflag.Args()[0]
	}

	// Parse minSize string to bytes
	size, err := humanize.ParseBytes(minSizeStr)
	if err != nil {
		return fmt.Errorf("invalid min-size: %w", err)
	}

	options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe

	logger := logging.Setup(verbosity)

	return logic(options, logger)
}
