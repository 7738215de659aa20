package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dupescan/internal/dupescan"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs scan results in JSON format.
func PrintJSON(stats *dupescan.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintGroup writes one duplicate set with its 1-based group number and an
// indexed member listing.
func PrintGroup(writer io.Writer, num int, set dupescan.DuplicateSet) {
	fmt.Fprintf(writer, "\nGroup %d [%s] | size %s | wasted %s\n",
		num,
		set.Digest.Short(),
		humanize.IBytes(uint64(set.Size)),     //nolint:gosec // Size is always positive
		humanize.IBytes(uint64(set.Wasted())), //nolint:gosec // Waste is always positive
	)

	for i, file := range set.Files {
		fmt.Fprintf(writer, "  %d: %s\n", i+1, file.Path)
	}
}

// PrintTable outputs the full report in human-readable form: every duplicate
// set followed by a totals summary.
func PrintTable(stats *dupescan.Stats, writer io.Writer) error {
	if len(stats.Sets) == 0 {
		fmt.Fprintln(writer, "No duplicates found.")
	}

	for i, set := range stats.Sets {
		PrintGroup(writer, i+1, set)
	}

	return PrintSummary(stats, writer)
}

// PrintSummary writes the totals block.
func PrintSummary(stats *dupescan.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nSummary:\t\t")
	fmt.Fprintf(w, "Files scanned:\t%d\n", stats.FileCount)
	fmt.Fprintf(w, "Files hashed:\t%d\n", stats.CandidateCount)
	fmt.Fprintf(w, "Duplicate groups:\t%d\n", len(stats.Sets))
	fmt.Fprintf(w, "Wasted space:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(stats.WastedBytes)), stats.WastedBytes) //nolint:gosec // Waste is always positive

	if stats.ErrorCount > 0 {
		fmt.Fprintf(w, "Skipped entries:\t%d\n", stats.ErrorCount)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", stats.Elapsed)

	return w.Flush()
}

// PrintDeletionSummary writes the tally after an interactive deletion run.
func PrintDeletionSummary(writer io.Writer, deleted, failed int, freed int64) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nDeletion summary:\t\t")
	fmt.Fprintf(w, "Files deleted:\t%d\n", deleted)

	if failed > 0 {
		fmt.Fprintf(w, "Failed deletions:\t%d\n", failed)
	}

	fmt.Fprintf(w, "Space freed:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(freed)), freed) //nolint:gosec // Freed is always positive

	return w.Flush()
}
