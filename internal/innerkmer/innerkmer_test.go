package innerkmer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shenwei356/nebula/internal/genome"
	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/sv"
)

func repeatingSeq(n int) string {
	bases := "ACGTACGGTTCAGACTGAACCTTGACCGTAGGCATTACGGAATCCGTA"
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(bases)
	}
	return b.String()[:n]
}

func writeFasta(t *testing.T, chrom, seq string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.fa")
	if err := os.WriteFile(path, []byte(">"+chrom+"\n"+seq+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestExtractPartitionsUniqueAndSharedByReferenceCount(t *testing.T) {
	seq := repeatingSeq(500)
	path := writeFasta(t, "chr1", seq)
	ref, err := genome.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ref.Close()

	evt := sv.Event{Chrom: "chr1", Begin: 200, End: 260, Kind: sv.Deletion}
	padded, err := sv.Sequence(ref, evt, 5, 16)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}

	res, err := Extract(ref, evt, padded, nil, nil, 20)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, ik := range res.Unique {
		if ik.RefCount != 1 {
			t.Errorf("unique kmer %s has RefCount=%d, want 1", ik.Kmer, ik.RefCount)
		}
	}
	for _, ik := range res.Shared {
		if ik.RefCount <= 1 {
			t.Errorf("shared kmer %s has RefCount=%d, want >1", ik.Kmer, ik.RefCount)
		}
	}
}

func TestExtractDropsBoundaryCollidingKmers(t *testing.T) {
	seq := repeatingSeq(500)
	path := writeFasta(t, "chr1", seq)
	ref, err := genome.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ref.Close()

	evt := sv.Event{Chrom: "chr1", Begin: 200, End: 260, Kind: sv.Deletion}
	padded, err := sv.Sequence(ref, evt, 5, 16)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}

	interior := padded.InteriorSequence(sv.Offset{})
	banAll := make(map[string]bool)
	for i := 0; i+16 <= len(interior); i++ {
		if canon, ok := kmer.Canonical(interior[i : i+16]); ok {
			banAll[canon] = true
		}
	}
	res, err := Extract(ref, evt, padded, banAll, nil, 20)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Unique) != 0 || len(res.Shared) != 0 {
		t.Errorf("expected all candidates dropped as boundary-colliding, got unique=%d shared=%d", len(res.Unique), len(res.Shared))
	}
}
