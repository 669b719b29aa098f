// Package counter streams sample reads and attributes k-mer
// observations to specific SV loci using co-occurring flanking
// markers, maintaining confident/doubtful/total tallies (spec.md
// §4.6). The read stream itself (not whole files) is distributed
// across a worker pool the way the teacher's unikmer/cmd/count.go
// drives GOMAXPROCS-sized concurrent processing, generalized here to
// per-worker thread-local maps reduced deterministically by a
// single-threaded reducer.
package counter

import (
	"runtime"
	"sync"

	"github.com/shenwei356/nebula/internal/fastqio"
	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/sv"
)

// Record is the mutable per-k-mer tally the counter builds, keyed by
// canonical k-mer (both orientations resolve to the same Record,
// spec.md §4.6).
type Record struct {
	Track            string
	PositiveMarkers  map[string]bool
	NegativeMarkers  map[string]bool
	InnerKmer        sv.InnerKmer
	Count            int
	Doubt            int
	Total            int
}

// Index is the frozen, single-threaded-built global map the worker
// pool reads from without further mutation (spec.md §5: "built
// single-threaded, frozen before worker dispatch").
type Index struct {
	records map[string]*Record
}

// BuildIndex merges every track's disambiguating inner k-mers
// (spec.md §4.5's unique_inner_kmers, primarily) into one global map,
// dropping any k-mer claimed by more than one track — spec.md §4.6's
// cross-track collision rule ("it is no longer diagnostic").
func BuildIndex(perTrack map[string][]sv.InnerKmer) *Index {
	claimedBy := make(map[string]string)
	collided := make(map[string]bool)
	for track, kmers := range perTrack {
		for _, ik := range kmers {
			if owner, ok := claimedBy[ik.Kmer]; ok {
				if owner != track {
					collided[ik.Kmer] = true
				}
				continue
			}
			claimedBy[ik.Kmer] = track
		}
	}

	records := make(map[string]*Record)
	for track, kmers := range perTrack {
		for _, ik := range kmers {
			if collided[ik.Kmer] {
				continue
			}
			rec := &Record{
				Track:           track,
				InnerKmer:       ik,
				PositiveMarkers: toSet(ik.PositiveMarkers()),
				NegativeMarkers: toSet(ik.NegativeMarkers()),
			}
			records[ik.Kmer] = rec
		}
	}
	return &Index{records: records}
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

// localTally is a worker's disjoint, thread-local view of the shared
// Index's per-kmer counters (spec.md §5).
type localTally map[string]*struct{ Count, Doubt, Total int }

// Count streams every read across files through a shared channel that
// workers workers drain concurrently, attributing hits per spec.md
// §4.6's confident/doubtful/total rule, and merges the reduced
// per-kmer tallies back into idx's Records. Partitioning the
// read stream itself (rather than whole files) keeps every worker busy
// even for the common single-FASTQ sample (spec.md §4.6, §5).
func Count(idx *Index, k int, files []string, workers int) error {
	if workers < 1 {
		workers = 1
	}
	if workers > runtime.GOMAXPROCS(0) {
		workers = runtime.GOMAXPROCS(0)
	}

	reads := make(chan fastqio.Read, workers*4)
	readErrCh := make(chan error, 1)
	go func() {
		defer close(reads)
		for _, path := range files {
			err := fastqio.Each(path, func(read fastqio.Read) error {
				reads <- read
				return nil
			})
			if err != nil {
				readErrCh <- err
				return
			}
		}
	}()

	tallies := make([]localTally, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			tallies[w] = countReads(idx, k, reads)
		}(w)
	}
	wg.Wait()

	select {
	case err := <-readErrCh:
		return err
	default:
	}

	reduce(idx, tallies)
	return nil
}

func countReads(idx *Index, k int, reads <-chan fastqio.Read) localTally {
	tally := make(localTally)
	for read := range reads {
		readKmers := kmer.ExtractCanonicalKmers(k, nil, 0, true, read.Seq)
		for km := range readKmers {
			rec, ok := idx.records[km]
			if !ok {
				continue
			}
			t, ok := tally[km]
			if !ok {
				t = &struct{ Count, Doubt, Total int }{}
				tally[km] = t
			}
			t.Total++

			p := markerHit(rec.PositiveMarkers, readKmers)
			n := markerHit(rec.NegativeMarkers, readKmers)
			switch {
			case p && !n:
				t.Count++
			case n && !p:
				// confident negative: no increment
			default:
				t.Doubt++
			}
		}
	}
	return tally
}

func markerHit(markers map[string]bool, readKmers map[string]int) bool {
	for km := range readKmers {
		if markers[km] {
			return true
		}
	}
	return false
}

// reduce sums every worker's thread-local tallies into idx's Records,
// single-threaded and order-independent (spec.md §5).
func reduce(idx *Index, tallies []localTally) {
	for _, tally := range tallies {
		for km, t := range tally {
			rec := idx.records[km]
			rec.Count += t.Count
			rec.Doubt += t.Doubt
			rec.Total += t.Total
		}
	}
}

// Records exposes the finalized per-kmer tallies after Count returns.
func (idx *Index) Records() map[string]*Record { return idx.records }
