package sv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shenwei356/nebula/internal/genome"
)

func writeFasta(t *testing.T, dir, chrom, seq string) string {
	t.Helper()
	path := filepath.Join(dir, "ref.fa")
	content := ">" + chrom + "\n"
	for i := 0; i < len(seq); i += 60 {
		end := i + 60
		if end > len(seq) {
			end = len(seq)
		}
		content += seq[i:end] + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fasta: %v", err)
	}
	return path
}

func repeatingSeq(n int) string {
	bases := "ACGTACGGTTCAGACTGAACCTTGACCGTA"
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(bases)
	}
	return b.String()[:n]
}

func TestDeletionVariantSignatureExcisesInterior(t *testing.T) {
	dir := t.TempDir()
	seq := repeatingSeq(400)
	path := writeFasta(t, dir, "chr1", seq)
	ref, err := genome.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ref.Close()

	evt := Event{Chrom: "chr1", Begin: 150, End: 200, Kind: Deletion}
	p, err := Sequence(ref, evt, 5, 8)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}
	head, tail, ok := p.VariantSignature(Offset{})
	if !ok {
		t.Fatalf("VariantSignature not ok")
	}
	if len(head) != 16 || len(tail) != 16 {
		t.Errorf("head/tail length = %d/%d, want 16/16", len(head), len(tail))
	}
}

func TestInversionVariantSignatureDiffersFromReference(t *testing.T) {
	dir := t.TempDir()
	seq := repeatingSeq(400)
	path := writeFasta(t, dir, "chr1", seq)
	ref, err := genome.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ref.Close()

	evt := Event{Chrom: "chr1", Begin: 150, End: 200, Kind: Inversion}
	p, err := Sequence(ref, evt, 5, 8)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}
	vh, vt, ok := p.VariantSignature(Offset{})
	if !ok {
		t.Fatalf("VariantSignature not ok")
	}
	rh, rt, ok := p.ReferenceSignature(Offset{})
	if !ok {
		t.Fatalf("ReferenceSignature not ok")
	}
	if vh == rh && vt == rt {
		t.Errorf("inversion signature identical to reference signature")
	}
}

func TestDegenerateShortInteriorHasNoSignature(t *testing.T) {
	dir := t.TempDir()
	seq := repeatingSeq(400)
	path := writeFasta(t, dir, "chr1", seq)
	ref, err := genome.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ref.Close()

	evt := Event{Chrom: "chr1", Begin: 150, End: 152, Kind: Deletion}
	p, err := Sequence(ref, evt, 5, 31)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}
	if _, _, ok := p.VariantSignature(Offset{}); ok {
		t.Errorf("expected degenerate (2k > interior_length) case to report ok=false")
	}
}

func TestInnerKmersRespectsMaxCountAndN(t *testing.T) {
	interior := repeatingSeq(120)
	counts := map[string]int{}
	counter := func(km string) int { return counts[km] }
	got := InnerKmers(8, interior, counter, 10, 3, false)
	if len(got) > 3 {
		t.Errorf("InnerKmers returned %d kmers, want <= 3", len(got))
	}

	// ACGTACGG is the first (canonical) window of interior; a reference
	// count above maxCount must keep it out even when n is not limiting.
	counts["ACGTACGG"] = 11
	for _, km := range InnerKmers(8, interior, counter, 10, 1000, false) {
		if km == "ACGTACGG" {
			t.Errorf("InnerKmers kept %s despite count 11 > maxCount 10", km)
		}
	}
}
