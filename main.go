// Command dupescan scans a directory tree for files with identical content
// and reports (or interactively deletes) the duplicates.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/dupescan/internal/cli"
)

// version is the build version, set at build time with -ldflags.
//
//nolint:gochecknoglobals // Set by the linker
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
