package dupescan

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// hashResult pairs a record with its digest outcome.
type hashResult struct {
	rec    FileRecord
	digest Digest
	err    error
}

// verifier hashes candidate files through a bounded worker pool and regroups
// each size bucket by content digest. Hashing independent files shares no
// mutable state; results are merged on the collecting goroutine only.
type verifier struct {
	workers int
	hash    func(string) (Digest, error)
	log     zerolog.Logger
	done    atomic.Int64
	total   atomic.Int64
}

// worker hashes records from jobs until the channel is drained.
func (v *verifier) worker(ctx context.Context, jobs <-chan FileRecord, results chan<- hashResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for rec := range jobs {
		select {
		case <-ctx.Done():
			results <- hashResult{rec: rec, err: ctx.Err()}

			continue
		default:
		}

		digest, err := v.hash(rec.Path)
		v.done.Add(1)
		results <- hashResult{rec: rec, digest: digest, err: err}
	}
}

// verify hashes every member of every multi-member size bucket and regroups
// the bucket by digest. Unhashable files are logged and excluded from their
// bucket; digest groups with a single member are dropped as size collisions
// with differing content. Returned sets and their members are sorted by path
// so results are reproducible across runs.
func (v *verifier) verify(ctx context.Context, buckets map[int64][]FileRecord) (sets []DuplicateSet, errors int64) {
	total := 0
	for _, records := range buckets {
		total += len(records)
	}

	v.total.Store(int64(total))

	if total == 0 {
		return nil, 0
	}

	workers := v.workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan FileRecord, total)
	results := make(chan hashResult, total)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go v.worker(ctx, jobs, results, &wg)
	}

	for _, records := range buckets {
		for _, rec := range records {
			jobs <- rec
		}
	}

	close(jobs)
	wg.Wait()
	close(results)

	digests := make(map[string]Digest, total)

	for res := range results {
		if res.err != nil {
			v.log.Warn().Err(res.err).Str("path", res.rec.Path).Msg("cannot hash file, excluding from comparison")
			errors++

			continue
		}

		digests[res.rec.Path] = res.digest
	}

	for size, records := range buckets {
		groups := make(map[Digest][]FileRecord)

		for _, rec := range records {
			if digest, ok := digests[rec.Path]; ok {
				groups[digest] = append(groups[digest], rec)
			}
		}

		for digest, members := range groups {
			if len(members) < 2 {
				continue
			}

			sort.Slice(members, func(i, j int) bool {
				return members[i].Path < members[j].Path
			})

			sets = append(sets, DuplicateSet{
				Digest: digest,
				Hex:    digest.Hex(),
				Size:   size,
				Files:  members,
			})
		}
	}

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Files[0].Path < sets[j].Files[0].Path
	})

	return sets, errors
}
