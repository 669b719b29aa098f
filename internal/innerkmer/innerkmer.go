// Package innerkmer selects disambiguating interior k-mers for a
// candidate SV and computes their reference-wide occurrences plus
// per-occurrence locally-unique flanking markers (spec.md §4.5). It is
// grounded on the original's kmer/sv.py occurrence-scanning loop and
// on the teacher's sliding-window extraction (internal/kmer), reused
// here to scan the whole reference rather than a single padded
// window.
package innerkmer

import (
	"sort"

	"github.com/shenwei356/nebula/internal/genome"
	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/sv"
)

// Candidate inner-kmer extraction parameters fixed by spec.md §4.5.
const (
	MaxCount = 10
	N        = 1000
	Overlap  = false
	Canonical = true
)

// Result partitions a track's disambiguating inner k-mers per
// spec.md §4.5's "Partitioning" rule.
type Result struct {
	Unique []sv.InnerKmer // reference count == 1
	Shared []sv.InnerKmer // reference count > 1
}

// Extract runs the full C5 pipeline for one SV: candidate selection,
// boundary-collision filtering, reference-wide occurrence scanning,
// flank computation and locally-unique marker derivation.
func Extract(ref *genome.Reference, evt sv.Event, padded sv.Padded, boundaryKmers map[string]bool, counter kmer.Counter, slack int) (Result, error) {
	interior := padded.InteriorSequence(sv.Offset{})
	k := padded.K()

	candidates := sv.InnerKmers(k, interior, counter, MaxCount, N, Overlap)

	var kept []string
	for _, km := range candidates {
		if boundaryKmers != nil && boundaryKmers[km] {
			continue
		}
		kept = append(kept, km)
	}
	sort.Strings(kept)

	occByKmer := make(map[string][]sv.Occurrence, len(kept))
	for _, chrom := range ref.Chromosomes() {
		if err := scanChromosome(ref, chrom, k, kept, evt, slack, occByKmer); err != nil {
			return Result{}, err
		}
	}

	var res Result
	for _, km := range kept {
		occs := occByKmer[km]
		ik := sv.InnerKmer{Kmer: km, RefCount: len(occs), Occurrences: occs}
		annotateLocalUniqueness(ik)
		if len(occs) == 1 {
			res.Unique = append(res.Unique, ik)
		} else if len(occs) > 1 {
			res.Shared = append(res.Shared, ik)
		}
	}
	return res, nil
}

// scanChromosome finds every occurrence (both orientations) of each
// k-mer in kept within chrom, appending results into occByKmer.
func scanChromosome(ref *genome.Reference, chrom string, k int, kept []string, evt sv.Event, slack int, occByKmer map[string][]sv.Occurrence) error {
	if len(kept) == 0 {
		return nil
	}
	length := ref.Length(chrom)
	if length <= 0 {
		return nil
	}
	seq, err := ref.Sequence(chrom, 0, length)
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(kept))
	for _, km := range kept {
		want[km] = true
	}

	for i := 0; i+k <= len(seq); i++ {
		window := seq[i : i+k]
		canon, ok := kmer.Canonical(window)
		if !ok {
			continue
		}
		if !want[canon] {
			continue
		}
		lf, rf := flanks(seq, i, i+k, slack)
		occ := sv.Occurrence{
			Chrom:      chrom,
			Pos:        i,
			Forward:    window == canon,
			Positive:   chrom == evt.Chrom && i >= evt.Begin && i < evt.End,
			LeftFlank:  flankKmers(k, lf),
			RightFlank: flankKmers(k, rf),
		}
		occByKmer[canon] = append(occByKmer[canon], occ)
	}
	return nil
}

// flanks returns the width-slack left/right windows around [begin,end)
// in seq, clamped to bounds.
func flanks(seq string, begin, end, slack int) (left, right string) {
	ls := begin - slack
	if ls < 0 {
		ls = 0
	}
	re := end + slack
	if re > len(seq) {
		re = len(seq)
	}
	return seq[ls:begin], seq[end:re]
}

func flankKmers(k int, flank string) []string {
	found := kmer.ExtractCanonicalKmers(k, nil, 0, true, flank)
	out := make([]string, 0, len(found))
	for km := range found {
		out = append(out, km)
	}
	sort.Strings(out)
	return out
}

// annotateLocalUniqueness keeps, per occurrence, only the flank k-mers
// that appear in exactly one occurrence's flank set across the whole
// record (spec.md §4.5 step 5). It rewrites ik.Occurrences in place.
func annotateLocalUniqueness(ik sv.InnerKmer) {
	occurCount := make(map[string]int)
	for _, occ := range ik.Occurrences {
		seen := make(map[string]bool)
		for _, f := range occ.LeftFlank {
			seen[f] = true
		}
		for _, f := range occ.RightFlank {
			seen[f] = true
		}
		for f := range seen {
			occurCount[f]++
		}
	}
	for idx := range ik.Occurrences {
		occ := &ik.Occurrences[idx]
		occ.LeftFlank = uniqueOnly(occ.LeftFlank, occurCount)
		occ.RightFlank = uniqueOnly(occ.RightFlank, occurCount)
	}
}

func uniqueOnly(flank []string, occurCount map[string]int) []string {
	out := flank[:0:0]
	for _, f := range flank {
		if occurCount[f] == 1 {
			out = append(out, f)
		}
	}
	return out
}
