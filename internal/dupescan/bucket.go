package dupescan

import "sync"

// collector groups FileRecords by exact byte size from concurrent fastwalk
// callbacks using a mutex.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	buckets    map[int64][]FileRecord
	fileCount  int64
	errorCount int64
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{
		buckets: make(map[int64][]FileRecord),
	}
}

// add records a file into its size bucket. This operation is protected by a
// mutex since fastwalk calls the callback from multiple goroutines
// concurrently.
func (c *collector) add(rec FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.buckets[rec.Size] = append(c.buckets[rec.Size], rec)
}

// addError increments the skipped-entry counter.
func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// snapshot returns the size buckets and counters collected so far.
func (c *collector) snapshot() (buckets map[int64][]FileRecord, files, errors int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.buckets, c.fileCount, c.errorCount
}

// candidateBuckets drops every size bucket with a single member. Most files
// in a typical tree are size-unique, so this prunes the bulk of the
// candidates before any hashing happens.
func candidateBuckets(buckets map[int64][]FileRecord) map[int64][]FileRecord {
	candidates := make(map[int64][]FileRecord)

	for size, records := range buckets {
		if len(records) > 1 {
			candidates[size] = records
		}
	}

	return candidates
}
