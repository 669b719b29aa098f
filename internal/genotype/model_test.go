package genotype

import (
	"testing"

	"github.com/shenwei356/nebula/internal/sv"
)

func TestNewModelIndexesTracksByName(t *testing.T) {
	events := map[string]sv.Event{
		"trackB": {Chrom: "chr1", Begin: 100, End: 200, Kind: sv.Deletion},
		"trackA": {Chrom: "chr1", Begin: 10, End: 20, Kind: sv.Inversion},
	}
	m := NewModel(events, nil, 30)
	if len(m.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(m.Tracks))
	}
	if m.Tracks[0].Name != "trackA" || m.Tracks[1].Name != "trackB" {
		t.Errorf("tracks not sorted by name: %+v", m.Tracks)
	}
	if m.Tracks[0].Index != 0 || m.Tracks[1].Index != 1 {
		t.Errorf("track indices not dense from 0: %+v", m.Tracks)
	}
}

func TestSolveHomozygousSingleTrackSingleKmer(t *testing.T) {
	// One track, one inner kmer interior to the deletion with zero
	// residue and zero observed count: both copies deleted, so the
	// reference kmer vanishes from the sample and c_tau rounds to
	// homozygous (1,1).
	coverage := 10.0
	events := map[string]sv.Event{
		"trackA": {Chrom: "chr1", Begin: 0, End: 100, Kind: sv.Deletion},
	}
	kmers := []sv.CountedKmer{
		{
			InnerKmer: sv.InnerKmer{Kmer: "AAAACCCC", RefCount: 1},
			Count:     0,
			Residue:   0,
			Tracks:    map[string]int{"trackA": 1},
		},
	}
	m := NewModel(events, kmers, coverage)
	genotypes, err := m.Solve(nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(genotypes) != 1 {
		t.Fatalf("got %d genotypes, want 1", len(genotypes))
	}
	if genotypes[0] != Homozygous {
		t.Errorf("genotype = %+v, want Homozygous (zero observed count, both copies deleted)", genotypes[0])
	}
}

func TestSolveAbsentSingleTrackSingleKmer(t *testing.T) {
	// Observed count 20 is at least coverage * multiplicity (10), the
	// model's expected count at c_tau = 1: the interior kmer is fully
	// present, c_tau saturates at 1, and the event is absent (0,0).
	coverage := 10.0
	events := map[string]sv.Event{
		"trackA": {Chrom: "chr1", Begin: 0, End: 100, Kind: sv.Deletion},
	}
	kmers := []sv.CountedKmer{
		{
			InnerKmer: sv.InnerKmer{Kmer: "AAAACCCC", RefCount: 1},
			Count:     20,
			Residue:   0,
			Tracks:    map[string]int{"trackA": 1},
		},
	}
	m := NewModel(events, kmers, coverage)
	genotypes, err := m.Solve(nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if genotypes[0] != Absent {
		t.Errorf("genotype = %+v, want Absent (observed count matches coverage*2*multiplicity)", genotypes[0])
	}
}
