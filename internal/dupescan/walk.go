package dupescan

import (
	"context"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog"
)

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// walk enumerates every regular file under root at or above minSize and feeds
// it into the collector. Per-entry errors are logged, counted and skipped;
// only a failure of the traversal itself is returned.
//
//nolint:varnamelen // d is standard for DirEntry, c for collector
func walk(
	ctx context.Context,
	root string,
	minSize int64,
	excludes []*regexp.Regexp,
	c *collector,
	log zerolog.Logger,
) error {
	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	return fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			c.addError()

			return nil // Per-entry errors never abort the walk
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if matchedPattern := shouldExcludeByPattern(path, excludes); matchedPattern != nil {
			log.Debug().
				Str("path", filepath.ToSlash(path)).
				Str("pattern", matchedPattern.String()).
				Msg("excluded by pattern")

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("cannot stat file, skipping")
			c.addError()

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		if info.Size() < minSize {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		c.add(FileRecord{Path: abs, Size: info.Size()})

		return nil
	})
}
