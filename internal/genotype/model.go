// Package genotype builds the genotyping linear program of spec.md
// §4.7 and decodes its solution into per-track genotype calls. No
// example repo in the retrieved corpus carries an LP/ILP dependency,
// so the solver (simplex.go) is hand-rolled over
// gonum.org/v1/gonum/mat, the nearest numerical-computing library the
// corpus offers (kortschak-ins's go.mod pulls it in for its own
// coordinate arithmetic). See DESIGN.md.
package genotype

import (
	"sort"

	"github.com/shenwei356/nebula/internal/sv"
)

// Genotype is the decoded call for one track (spec.md §4.7 Decoding).
type Genotype struct {
	A, B int // (1,1) hom, (1,0) het, (0,0) absent
}

var (
	Absent        = Genotype{0, 0}
	Heterozygous  = Genotype{1, 0}
	Homozygous    = Genotype{1, 1}
)

// Track is one SV event plus its dense LP index tau.
type Track struct {
	Name  string
	Event sv.Event
	Index int
}

// KmerVar is one retained inner k-mer plus its dense LP index kappa,
// reference count, residue, per-track multiplicity, and observed
// count (spec.md §4.7 Indexing/Variables).
type KmerVar struct {
	Kmer         string
	Index        int
	Count        int
	Residue      int
	Multiplicity map[string]int // track name -> multiplicity(kappa, tau)
}

// Model is the assembled LP instance: variables c_tau, e_kappa, l_kappa
// and the three constraint families of spec.md §4.7.
type Model struct {
	Tracks   []Track
	Kmers    []KmerVar
	Coverage float64
}

// NewModel assigns dense indices: tracks sorted by name, k-mers in the
// caller-supplied (already-deterministic, per spec.md §5) order
// (spec.md §4.7 "Indexing").
func NewModel(trackEvents map[string]sv.Event, kmers []sv.CountedKmer, coverage float64) Model {
	names := make([]string, 0, len(trackEvents))
	for name := range trackEvents {
		names = append(names, name)
	}
	sort.Strings(names)

	tracks := make([]Track, len(names))
	for i, name := range names {
		tracks[i] = Track{Name: name, Event: trackEvents[name], Index: i}
	}

	kvars := make([]KmerVar, len(kmers))
	for i, ck := range kmers {
		kvars[i] = KmerVar{
			Kmer:         ck.Kmer,
			Index:        i,
			Count:        ck.Count,
			Residue:      ck.Residue,
			Multiplicity: ck.Tracks,
		}
	}

	return Model{Tracks: tracks, Kmers: kvars, Coverage: coverage}
}

// bounds returns [lb, ub] for e_kappa (spec.md §4.7 Variables).
func (m Model) bounds(kv KmerVar) (lb, ub float64) {
	sumMult := 0
	for _, mult := range kv.Multiplicity {
		sumMult += mult
	}
	ub = float64(kv.Count) - m.Coverage*float64(kv.Residue)
	lb = ub - m.Coverage*float64(sumMult)
	return lb, ub
}

// Solve builds and solves the standard-form LP, then decodes each
// track's genotype by rounding 2*c_tau (spec.md §4.7 Decoding).
// labels optionally fixes a subset of tracks to a known c value within
// +/-0.01 (spec.md §4.7 "Iterative variant").
func (m Model) Solve(labels map[string]float64) ([]Genotype, error) {
	n := len(m.Tracks)
	nk := len(m.Kmers)

	cLB := make([]float64, n)
	cUB := make([]float64, n)
	for i, tr := range m.Tracks {
		cLB[i], cUB[i] = 0, 1
		if lab, ok := labels[tr.Name]; ok {
			lo, hi := lab-0.01, lab+0.01
			if lo < 0 {
				lo = 0
			}
			if hi > 1 {
				hi = 1
			}
			cLB[i], cUB[i] = lo, hi
		}
	}

	eLB := make([]float64, nk)
	eUB := make([]float64, nk)
	for k, kv := range m.Kmers {
		eLB[k], eUB[k] = m.bounds(kv)
	}

	lp := buildStandardForm(m, cLB, cUB, eLB, eUB)
	x, err := solveSimplex(lp)
	if err != nil {
		return nil, err
	}

	genotypes := make([]Genotype, n)
	for i := range m.Tracks {
		c := x[i]
		switch round(2 * c) {
		case 0:
			genotypes[i] = Homozygous
		case 1:
			genotypes[i] = Heterozygous
		default:
			genotypes[i] = Absent
		}
	}
	return genotypes, nil
}

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
