package dupescan

import (
	"time"

	"github.com/rs/zerolog"
)

// FileRecord identifies one regular file discovered during the walk.
type FileRecord struct {
	// Path is the absolute path to the file.
	Path string `json:"path"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// DuplicateSet is a confirmed group of two or more files sharing identical
// size and content digest.
type DuplicateSet struct {
	// Digest is the content digest shared by every member.
	Digest Digest `json:"-"`
	// Hex is the hexadecimal rendering of Digest.
	Hex string `json:"digest"`
	// Size is the byte size shared by every member.
	Size int64 `json:"size"`
	// Files are the members, sorted by path. Always at least two.
	Files []FileRecord `json:"files"`
}

// Wasted returns the bytes reclaimable by keeping a single member of the set.
func (s DuplicateSet) Wasted() int64 {
	return s.Size * int64(len(s.Files)-1)
}

// Stats holds the outcome of one scan.
type Stats struct {
	// Root is the absolute path of the scanned directory.
	Root string `json:"root"`
	// Sets contains every confirmed duplicate set, sorted by first member path.
	Sets []DuplicateSet `json:"groups"`
	// FileCount is the number of files at or above the size threshold.
	FileCount int64 `json:"file_count"`
	// CandidateCount is the number of files that reached the hash phase.
	CandidateCount int64 `json:"candidate_count"`
	// ErrorCount is the number of entries skipped due to read errors.
	ErrorCount int64 `json:"error_count"`
	// WastedBytes is the total reclaimable space across all sets.
	WastedBytes int64 `json:"wasted_bytes"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a scan and the CLI behavior around it.
type Options struct {
	// Path is the directory to scan.
	Path string
	// MinSize is the minimum file size in bytes; smaller files are never
	// considered.
	MinSize int64
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Workers bounds hash concurrency (0 = number of CPUs).
	Workers int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives scan diagnostics. The zero value discards them.
	Logger zerolog.Logger
	// Delete indicates whether to run the interactive deletion flow.
	Delete bool
	// Output represents the output format (table or json).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
}
