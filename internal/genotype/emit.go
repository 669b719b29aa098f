package genotype

import (
	"fmt"
	"io"
)

// WriteBED emits one BED line per track: original chrom/start/end,
// decoded genotype, the raw c_tau fraction, and batch (spec.md §4.7
// Decoding).
func WriteBED(w io.Writer, m Model, genotypes []Genotype, fractions []float64, batch string) error {
	for i, tr := range m.Tracks {
		g := genotypes[i]
		_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d/%d\t%.4f\t%s\n",
			tr.Event.Chrom, tr.Event.Begin, tr.Event.End, g.A, g.B, fractions[i], batch)
		if err != nil {
			return err
		}
	}
	return nil
}

// SolveWithFractions is Solve plus the raw c_tau values WriteBED needs
// alongside the decoded genotype.
func (m Model) SolveWithFractions(labels map[string]float64) ([]Genotype, []float64, error) {
	n := len(m.Tracks)
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
	eLB := make([]float64, len(m.Kmers))
	eUB := make([]float64, len(m.Kmers))
	for k, kv := range m.Kmers {
		eLB[k], eUB[k] = m.bounds(kv)
	}

	lp := buildStandardForm(m, cLB, cUB, eLB, eUB)
	fractions, err := solveSimplex(lp)
	if err != nil {
		return nil, nil, err
	}

	genotypes := make([]Genotype, n)
	for i := range m.Tracks {
		switch round(2 * fractions[i]) {
		case 0:
			genotypes[i] = Homozygous
		case 1:
			genotypes[i] = Heterozygous
		default:
			genotypes[i] = Absent
		}
	}
	return genotypes, fractions, nil
}

// PerEvent solves an independent, single-track (T=1) LP for every
// track (spec.md §4.7 "Per-event variant"), trading global k-mer
// coupling for isolation.
func PerEvent(full Model) ([]Genotype, []float64, error) {
	genotypes := make([]Genotype, len(full.Tracks))
	fractions := make([]float64, len(full.Tracks))
	for i, tr := range full.Tracks {
		var kmers []KmerVar
		for _, kv := range full.Kmers {
			if mult, ok := kv.Multiplicity[tr.Name]; ok && mult > 0 {
				kmers = append(kmers, KmerVar{
					Kmer:         kv.Kmer,
					Index:        len(kmers),
					Count:        kv.Count,
					Residue:      kv.Residue,
					Multiplicity: map[string]int{tr.Name: mult},
				})
			}
		}
		single := Model{
			Tracks:   []Track{{Name: tr.Name, Event: tr.Event, Index: 0}},
			Kmers:    kmers,
			Coverage: full.Coverage,
		}
		g, f, err := single.SolveWithFractions(nil)
		if err != nil {
			return nil, nil, fmt.Errorf("genotype: per-event solve for %s: %w", tr.Name, err)
		}
		genotypes[i] = g[0]
		fractions[i] = f[0]
	}
	return genotypes, fractions, nil
}
