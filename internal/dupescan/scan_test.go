package dupescan_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dupescan/internal/dupescan"
)

// writeFile creates a file with the given content under dir, creating parent
// directories as needed, and returns its path.
func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))

	return path
}

// paths extracts the member paths of a set for comparison.
func paths(files []dupescan.FileRecord) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}

	return out
}

func TestRunFindsDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))
	b := writeFile(t, dir, "b.txt", []byte("hello"))
	writeFile(t, dir, "c.txt", []byte("world"))

	stats, err := dupescan.Run(context.Background(), dupescan.Options{
		Path:    dir,
		MinSize: 1,
		Logger:  zerolog.Nop(),
	}, nil)
	require.NoError(t, err)

	require.Len(t, stats.Sets, 1)

	set := stats.Sets[0]
	assert.EqualValues(t, 5, set.Size)
	assert.EqualValues(t, 5, set.Wasted())
	assert.Equal(t, []string{a, b}, paths(set.Files))

	assert.EqualValues(t, 5, stats.WastedBytes)
	assert.EqualValues(t, 3, stats.FileCount)
	// All three files share a size, so all three reach the hash phase.
	assert.EqualValues(t, 3, stats.CandidateCount)
	assert.EqualValues(t, 0, stats.ErrorCount)
}

func TestRunSameSizeDifferentContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.bin", bytes.Repeat([]byte("a"), 1024))
	writeFile(t, dir, "b.bin", bytes.Repeat([]byte("b"), 1024))

	stats, err := dupescan.Run(context.Background(), dupescan.Options{
		Path:    dir,
		MinSize: 1,
		Logger:  zerolog.Nop(),
	}, nil)
	require.NoError(t, err)

	// Both pass the size filter into one bucket, but the hash phase must
	// separate them into singleton digest groups, both dropped.
	assert.Empty(t, stats.Sets)
	assert.EqualValues(t, 2, stats.CandidateCount)
	assert.EqualValues(t, 0, stats.WastedBytes)
}

func TestRunMinSizeFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small1.txt", []byte("tiny"))
	writeFile(t, dir, "small2.txt", []byte("tiny"))
	big1 := writeFile(t, dir, "big1.bin", bytes.Repeat([]byte("x"), 2048))
	big2 := writeFile(t, dir, "big2.bin", bytes.Repeat([]byte("x"), 2048))

	stats, err := dupescan.Run(context.Background(), dupescan.Options{
		Path:    dir,
		MinSize: 1024,
		Logger:  zerolog.Nop(),
	}, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.FileCount)

	require.Len(t, stats.Sets, 1)
	assert.Equal(t, []string{big1, big2}, paths(stats.Sets[0].Files))

	// Files below the threshold never appear in any set.
	for _, set := range stats.Sets {
		for _, file := range set.Files {
			assert.GreaterOrEqual(t, file.Size, int64(1024))
		}
	}
}

func TestRunNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "top.dat", []byte("copied content"))
	b := writeFile(t, dir, filepath.Join("nested", "deep", "copy.dat"), []byte("copied content"))

	stats, err := dupescan.Run(context.Background(), dupescan.Options{
		Path:    dir,
		MinSize: 1,
		Logger:  zerolog.Nop(),
	}, nil)
	require.NoError(t, err)

	require.Len(t, stats.Sets, 1)
	assert.ElementsMatch(t, []string{a, b}, paths(stats.Sets[0].Files))
}

func TestRunExcludePattern(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "kept1.dat", []byte("copied content"))
	b := writeFile(t, dir, "kept2.dat", []byte("copied content"))
	writeFile(t, dir, filepath.Join("skipme", "copy.dat"), []byte("copied content"))

	stats, err := dupescan.Run(context.Background(), dupescan.Options{
		Path:     dir,
		MinSize:  1,
		Excludes: []string{`.*skipme.*`},
		Logger:   zerolog.Nop(),
	}, nil)
	require.NoError(t, err)

	require.Len(t, stats.Sets, 1)
	assert.Equal(t, []string{a, b}, paths(stats.Sets[0].Files))
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("same bytes here"))
	writeFile(t, dir, "b.txt", []byte("same bytes here"))
	writeFile(t, dir, "c.txt", []byte("same bytes here"))
	writeFile(t, dir, "unique.txt", []byte("different bytes"))

	opts := dupescan.Options{
		Path:    dir,
		MinSize: 1,
		Workers: 4,
		Logger:  zerolog.Nop(),
	}

	first, err := dupescan.Run(context.Background(), opts, nil)
	require.NoError(t, err)

	second, err := dupescan.Run(context.Background(), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Sets, second.Sets)
	assert.Equal(t, first.WastedBytes, second.WastedBytes)
}

func TestRunSetupErrors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "regular.txt", []byte("not a directory"))

	tests := []struct {
		name string
		path string
	}{
		{"missing root", filepath.Join(dir, "does-not-exist")},
		{"root is a file", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dupescan.Run(context.Background(), dupescan.Options{
				Path:   tt.path,
				Logger: zerolog.Nop(),
			}, nil)
			assert.Error(t, err)
		})
	}
}

func TestRunBadExcludePattern(t *testing.T) {
	_, err := dupescan.Run(context.Background(), dupescan.Options{
		Path:     t.TempDir(),
		Excludes: []string{`(`},
		Logger:   zerolog.Nop(),
	}, nil)
	assert.Error(t, err)
}
