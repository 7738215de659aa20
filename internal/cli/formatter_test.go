package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dupescan/internal/dupescan"
)

func sampleStats() *dupescan.Stats {
	digest := dupescan.Digest{0xab, 0x12, 0xcd, 0x34}

	return &dupescan.Stats{
		Root: "/scanned",
		Sets: []dupescan.DuplicateSet{
			{
				Digest: digest,
				Hex:    digest.Hex(),
				Size:   5,
				Files: []dupescan.FileRecord{
					{Path: "/scanned/a.txt", Size: 5},
					{Path: "/scanned/b.txt", Size: 5},
				},
			},
		},
		FileCount:      3,
		CandidateCount: 3,
		WastedBytes:    5,
		Elapsed:        time.Millisecond,
	}
}

func TestPrintGroup(t *testing.T) {
	var out bytes.Buffer

	PrintGroup(&out, 1, sampleStats().Sets[0])

	got := out.String()
	assert.Contains(t, got, "Group 1 [ab12cd34]")
	assert.Contains(t, got, "1: /scanned/a.txt")
	assert.Contains(t, got, "2: /scanned/b.txt")
	assert.Contains(t, got, "wasted 5 B")
}

func TestPrintTable(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, PrintTable(sampleStats(), &out))

	got := out.String()
	assert.Contains(t, got, "Group 1")
	assert.Contains(t, got, "Duplicate groups:")
	assert.Contains(t, got, "Wasted space:")
	assert.NotContains(t, got, "No duplicates found.")
}

func TestPrintTableNoDuplicates(t *testing.T) {
	var out bytes.Buffer

	stats := &dupescan.Stats{Root: "/scanned"}

	require.NoError(t, PrintTable(stats, &out))
	assert.Contains(t, out.String(), "No duplicates found.")
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, PrintJSON(sampleStats(), &out))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	assert.Equal(t, "/scanned", decoded["root"])
	assert.EqualValues(t, 5, decoded["wasted_bytes"])

	groups, ok := decoded["groups"].([]any)
	require.True(t, ok)
	require.Len(t, groups, 1)

	group, ok := groups[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, dupescan.Digest{0xab, 0x12, 0xcd, 0x34}.Hex(), group["digest"])
}

func TestPrintDeletionSummary(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, PrintDeletionSummary(&out, 2, 1, 10))

	got := out.String()
	assert.Contains(t, got, "Files deleted:")
	assert.Contains(t, got, "Failed deletions:")
	assert.Contains(t, got, "(10 bytes)")
}
