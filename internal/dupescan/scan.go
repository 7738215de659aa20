package dupescan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// compileExcludes compiles the exclusion patterns into regexes.
func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

// startProgressReporter invokes hook(done, total) on each tick until ctx is done.
//
//nolint:varnamelen // v is idiomatic for verifier
func startProgressReporter(ctx context.Context, v *verifier, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(v.done.Load(), v.total.Load())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run scans the tree at opt.Path and returns every confirmed duplicate set.
//
// The scan runs in three strictly sequenced phases: a parallel walk groups
// regular files at or above opt.MinSize by exact byte size, singleton buckets
// are discarded, and the surviving candidates are content-hashed through a
// worker pool bounded by opt.Workers and regrouped by digest. Per-file errors
// during the walk or the hash phase are logged and skipped; only a failure to
// access opt.Path itself (or a cancelled ctx) is returned as an error.
//
// Progress updates for the hash phase are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(done, total int64)) (*Stats, error) {
	log := opt.Logger

	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	root, err := filepath.Abs(opt.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	// Validate path exists and is a directory before any work happens
	if statInfo, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	excludes, err := compileExcludes(opt.Excludes)
	if err != nil {
		return nil, err
	}

	if opt.Workers <= 0 {
		opt.Workers = runtime.GOMAXPROCS(0)
	}

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()

	log.Info().Str("root", root).Int64("min_size", opt.MinSize).Msg("scanning")

	collector := newCollector()
	if err := walk(ctx, root, opt.MinSize, excludes, collector, log); err != nil {
		return nil, err
	}

	buckets, fileCount, walkErrors := collector.snapshot()
	candidates := candidateBuckets(buckets)

	log.Info().
		Int64("files", fileCount).
		Int("size_collisions", len(candidates)).
		Msg("walk complete, verifying hashes")

	verifier := &verifier{
		workers: opt.Workers,
		hash:    HashFile,
		log:     log,
	}

	startProgressReporter(ctx, verifier, progressHook, opt.ProgressInterval)

	sets, hashErrors := verifier.verify(ctx, candidates)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &Stats{
		Root:           root,
		Sets:           sets,
		FileCount:      fileCount,
		CandidateCount: verifier.total.Load(),
		ErrorCount:     walkErrors + hashErrors,
		Elapsed:        time.Since(start),
	}

	for _, set := range sets {
		stats.WastedBytes += set.Wasted()
	}

	return stats, nil
}
