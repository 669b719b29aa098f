package breakpoint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shenwei356/nebula/internal/genome"
	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/provider"
	"github.com/shenwei356/nebula/internal/sv"
)

func repeatingSeq(n int) string {
	bases := "ACGTACGGTTCAGACTGAACCTTGACCGTA"
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
	content := ">" + chrom + "\n" + seq + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRefineRetainsOnlyFullySupportedOffsets(t *testing.T) {
	seq := repeatingSeq(400)
	path := writeFasta(t, "chr1", seq)
	ref, err := genome.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ref.Close()

	evt := sv.Event{Chrom: "chr1", Begin: 150, End: 200, Kind: sv.Deletion}
	padded, err := sv.Sequence(ref, evt, 3, 8)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}

	zeroFront := Refine(padded, provider.NewMapProvider(nil), false, nil)
	if zeroFront.Count() != 0 {
		t.Errorf("expected 0 candidates against empty provider, got %d", zeroFront.Count())
	}

	counts := make(map[string]uint32)
	addWindow := func(seq string) {
		for i := 0; i+padded.K() <= len(seq); i++ {
			canon, ok := kmer.Canonical(seq[i : i+padded.K()])
			if !ok {
				continue
			}
			counts[canon] = 5
		}
	}
	for db := -padded.Radius; db <= padded.Radius; db++ {
		for de := -padded.Radius; de <= padded.Radius; de++ {
			head, tail, ok := padded.VariantSignature(sv.Offset{Begin: db, End: de})
			if !ok {
				continue
			}
			addWindow(head)
			addWindow(tail)
		}
	}
	full := provider.NewMapProvider(counts)
	front := Refine(padded, full, false, nil)
	if front.Count() == 0 {
		t.Errorf("expected at least one candidate when all signature kmers are supported")
	}
	for _, c := range front.Candidates {
		if c.ReferenceCount != [2]int{ReferenceCountPending, ReferenceCountPending} {
			t.Errorf("expected reference counts to remain at the pending sentinel, got %+v", c.ReferenceCount)
		}
	}
}
