package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/idelchi/dupescan/internal/dupescan"
	"github.com/idelchi/dupescan/internal/logging"
	"github.com/idelchi/dupescan/internal/reconcile"
)

func logic(options dupescan.Options, logger zerolog.Logger) error {
	interactive := options.Delete

	// The deletion flow consumes operator input one group at a time; without
	// a terminal on stdin it degrades to report-only.
	if interactive && !isatty.IsTerminal(os.Stdin.Fd()) {
		logger.Warn().Msg("stdin is not a terminal, ignoring --delete")

		interactive = false
	}

	enableProgress := strings.ToLower(options.Output) != "json" &&
		isatty.IsTerminal(os.Stderr.Fd())

	ctx := context.Background()

	// Simple progress callback that prints directly to stderr
	var progressHook func(done, total int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(done, total int64) {
			msg := fmt.Sprintf("Hashing… %d/%d files", done, total)
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	options.Logger = logging.Component(logger, "scan")

	stats, err := dupescan.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if strings.ToLower(options.Output) == "json" {
		return PrintJSON(stats, os.Stdout)
	}

	if !interactive || len(stats.Sets) == 0 {
		return PrintTable(stats, os.Stdout)
	}

	reconciler := &reconcile.Reconciler{
		Source: reconcile.NewConsoleSource(os.Stdin, os.Stdout),
		Out:    os.Stdout,
		Logger: logging.Component(logger, "reconcile"),
	}

	return reconcileGroups(stats, reconciler, os.Stdout)
}

// reconcileGroups walks every duplicate set through the interactive deletion
// flow, then prints the scan totals followed by the tally of freed space.
func reconcileGroups(stats *dupescan.Stats, reconciler *reconcile.Reconciler, writer io.Writer) error {
	var (
		freed   int64
		deleted int
		failed  int
	)

	for i, set := range stats.Sets {
		PrintGroup(writer, i+1, set)

		outcome := reconciler.Reconcile(set)

		freed += int64(len(outcome.Deleted)) * set.Size
		deleted += len(outcome.Deleted)
		failed += len(outcome.Failed)
	}

	if err := PrintSummary(stats, writer); err != nil {
		return err
	}

	return PrintDeletionSummary(writer, deleted, failed, freed)
}
