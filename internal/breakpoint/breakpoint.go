// Package breakpoint performs the grid search of spec.md §4.4: for
// each candidate SV, enumerate every offset pair in [-R,R]^2 and
// retain those whose variant-signature k-mers are all supported by
// the source-sample count provider. Grounded on the original's
// break_point.py `BreakPoint.extract_boundary` grid-search loop,
// expressed here as a flat double loop over internal/sv.Padded the
// way the teacher's iterator.go walks a flat sliding window.
package breakpoint

import (
	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/provider"
	"github.com/shenwei356/nebula/internal/sv"
)

// ReferenceCountPending is the sentinel recorded for a reference
// signature k-mer whose count the caller did not request (spec.md §9:
// "treat as sentinel", ported from the original's -1 placeholder).
const ReferenceCountPending = -1

// Candidate is one retained offset pair: its variant signature k-mers
// with their source-sample counts, and its reference signature k-mers
// (counts deferred unless Refine is called with withReferenceCounts).
type Candidate struct {
	Offset       sv.Offset
	VariantHead  string
	VariantTail  string
	VariantCount [2]int // [head, tail] source-sample counts
	ReferenceHead string
	ReferenceTail string
	ReferenceCount [2]int
}

// Frontier is the result of the grid search for one SV: every
// retained offset pair, in the deterministic order they were
// enumerated (Begin ascending, then End ascending).
type Frontier struct {
	Event      sv.Event
	Candidates []Candidate
}

// Refine runs the (2R+1)^2 grid search over padded for the
// source-sample provider sourceProvider. When withReferenceCounts is
// true, reference signature k-mer counts are looked up against
// refProvider instead of left at the ReferenceCountPending sentinel.
func Refine(padded sv.Padded, sourceProvider provider.Provider, withReferenceCounts bool, refProvider provider.Provider) Frontier {
	r := padded.Radius
	front := Frontier{Event: padded.Event}

	for db := -r; db <= r; db++ {
		for de := -r; de <= r; de++ {
			off := sv.Offset{Begin: db, End: de}
			vhead, vtail, ok := padded.VariantSignature(off)
			if !ok {
				continue
			}
			hc, hok := windowMinCount(padded.K(), vhead, sourceProvider)
			if !hok {
				continue
			}
			tc, tok := windowMinCount(padded.K(), vtail, sourceProvider)
			if !tok {
				continue
			}

			cand := Candidate{
				Offset:         off,
				VariantHead:    vhead,
				VariantTail:    vtail,
				VariantCount:   [2]int{hc, tc},
				ReferenceCount: [2]int{ReferenceCountPending, ReferenceCountPending},
			}
			if rhead, rtail, rok := padded.ReferenceSignature(off); rok {
				cand.ReferenceHead = rhead
				cand.ReferenceTail = rtail
				if withReferenceCounts && refProvider != nil {
					rhc, _ := windowMinCount(padded.K(), rhead, refProvider)
					rtc, _ := windowMinCount(padded.K(), rtail, refProvider)
					cand.ReferenceCount = [2]int{rhc, rtc}
				}
			}
			front.Candidates = append(front.Candidates, cand)
		}
	}
	return front
}

// Count returns the frontier size (spec.md §4.4 "frontier count").
func (f Frontier) Count() int { return len(f.Candidates) }

// windowMinCount slides a length-k canonical window across seq (a 2k
// signature window) and requires every extracted k-mer to have a
// source-sample count >= 1, returning the smallest of those counts.
// Ported from the original's count_kmers_exact_list(head, tail)
// all-or-nothing check — a provider is keyed by canonical k-length
// k-mers, never by the 2k window itself.
func windowMinCount(k int, seq string, p provider.Provider) (min int, ok bool) {
	min = -1
	for i := 0; i+k <= len(seq); i++ {
		canon, cok := kmer.Canonical(seq[i : i+k])
		if !cok {
			return 0, false
		}
		c := p.Get(canon)
		if c < 1 {
			return 0, false
		}
		if min == -1 || c < min {
			min = c
		}
	}
	if min == -1 {
		return 0, false
	}
	return min, true
}
