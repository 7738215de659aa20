// Package reconcile drives the interactive deletion flow over confirmed
// duplicate sets, one set at a time.
package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idelchi/dupescan/internal/dupescan"
)

// State is the terminal state of one duplicate set after reconciliation.
type State int

const (
	// StateSkipped means no member of the set was touched.
	StateSkipped State = iota
	// StateCompleted means deletion was attempted on every non-kept member.
	StateCompleted
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateCompleted:
		return "completed"
	default:
		return "skipped"
	}
}

// Decision is one operator answer for a duplicate set.
type Decision struct {
	// Keep is the 1-based index of the member to retain.
	Keep int
	// Skip leaves the set untouched.
	Skip bool
}

// DecisionSource supplies a Decision per duplicate set. In interactive use it
// is backed by the console; tests supply a scripted sequence instead.
type DecisionSource interface {
	Decide(set dupescan.DuplicateSet) Decision
}

// ConsoleSource prompts on an output stream and reads answers line by line
// from an input stream.
type ConsoleSource struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleSource returns a ConsoleSource prompting on out and reading from in.
func NewConsoleSource(in io.Reader, out io.Writer) *ConsoleSource {
	return &ConsoleSource{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Decide prompts for the member to keep. Anything that does not parse as an
// index within the set, including end of input, is treated as a skip.
func (s *ConsoleSource) Decide(set dupescan.DuplicateSet) Decision {
	fmt.Fprintf(s.out, "  enter number to KEEP (1-%d, anything else skips): ", len(set.Files))

	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return Decision{Skip: true}
	}

	keep, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || keep < 1 || keep > len(set.Files) {
		return Decision{Skip: true}
	}

	return Decision{Keep: keep}
}

// DeleteError reports a single member that could not be removed.
type DeleteError struct {
	// Path is the file that failed to delete.
	Path string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e DeleteError) Error() string {
	return fmt.Sprintf("deleting %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e DeleteError) Unwrap() error {
	return e.Err
}

// Outcome records what happened to one duplicate set.
type Outcome struct {
	// Set is the reconciled duplicate set.
	Set dupescan.DuplicateSet
	// State is the terminal state of the set.
	State State
	// Kept is the path of the retained member, empty when skipped.
	Kept string
	// Deleted lists every member successfully removed.
	Deleted []string
	// Failed lists every member that could not be removed.
	Failed []DeleteError
}

// Reconciler walks duplicate sets one at a time, asking its DecisionSource
// which member to keep and deleting the rest. Deletions are attempted
// independently; one failure never blocks the remaining members of the set
// or any later set.
type Reconciler struct {
	// Source supplies the keep decision per set.
	Source DecisionSource
	// Out receives the per-file progress lines.
	Out io.Writer
	// Logger receives deletion diagnostics.
	Logger zerolog.Logger
	// Remove deletes a single file. Defaults to os.Remove.
	Remove func(path string) error
}

// Reconcile runs the decision and deletion flow for a single set. An invalid
// or skip decision leaves the set exactly as found.
func (r *Reconciler) Reconcile(set dupescan.DuplicateSet) Outcome {
	remove := r.Remove
	if remove == nil {
		remove = os.Remove
	}

	outcome := Outcome{Set: set, State: StateSkipped}

	decision := r.Source.Decide(set)
	if decision.Skip || decision.Keep < 1 || decision.Keep > len(set.Files) {
		fmt.Fprintln(r.Out, "  skipping group")

		return outcome
	}

	kept := set.Files[decision.Keep-1]
	outcome.Kept = kept.Path
	outcome.State = StateCompleted

	fmt.Fprintf(r.Out, "  keeping: %s\n", kept.Path)

	for i, file := range set.Files {
		if i == decision.Keep-1 {
			continue
		}

		if err := remove(file.Path); err != nil {
			deleteErr := DeleteError{Path: file.Path, Err: err}
			outcome.Failed = append(outcome.Failed, deleteErr)
			r.Logger.Error().Err(err).Str("path", file.Path).Msg("cannot delete file")
			fmt.Fprintf(r.Out, "  failed to delete: %s (%v)\n", file.Path, err)

			continue
		}

		outcome.Deleted = append(outcome.Deleted, file.Path)
		fmt.Fprintf(r.Out, "  deleted: %s\n", file.Path)
	}

	return outcome
}
