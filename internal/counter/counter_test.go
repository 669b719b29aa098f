package counter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shenwei356/nebula/internal/sv"
)

func writeFastq(t *testing.T, reads ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	var content string
	for i, r := range reads {
		qual := ""
		for range r {
			qual += "I"
		}
		content += "@r" + itoa(i) + "\n" + r + "\n+\n" + qual + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}

func TestBuildIndexDropsCrossTrackCollisions(t *testing.T) {
	shared := sv.InnerKmer{Kmer: "AAAACCCC"}
	onlyA := sv.InnerKmer{Kmer: "GGGGTTTT"}
	idx := BuildIndex(map[string][]sv.InnerKmer{
		"trackA": {shared, onlyA},
		"trackB": {shared},
	})
	if _, ok := idx.records["AAAACCCC"]; ok {
		t.Errorf("expected cross-track kmer to be dropped from the index")
	}
	if _, ok := idx.records["GGGGTTTT"]; !ok {
		t.Errorf("expected single-track kmer to remain in the index")
	}
}

func TestCountConfidentPositiveAndNegativeAndDoubt(t *testing.T) {
	k := 8
	// All three are already their own canonical form (lexicographically
	// smaller than their reverse complement), so they appear in
	// ExtractCanonicalKmers' output exactly as written here.
	target := "AAAAAAAA"
	posMarker := "CCCCCCCC"
	negMarker := "ACACACAC"

	ik := sv.InnerKmer{Kmer: target}
	idx := BuildIndex(map[string][]sv.InnerKmer{"trackA": {ik}})
	idx.records[target].PositiveMarkers = map[string]bool{posMarker: true}
	idx.records[target].NegativeMarkers = map[string]bool{negMarker: true}

	confidentRead := target + posMarker
	doubtRead := target + posMarker + negMarker
	negativeOnlyRead := target + negMarker

	path := writeFastq(t, confidentRead, doubtRead, negativeOnlyRead)
	if err := Count(idx, k, []string{path}, 2); err != nil {
		t.Fatalf("Count: %v", err)
	}

	rec := idx.records[target]
	if rec.Total != 3 {
		t.Errorf("Total = %d, want 3", rec.Total)
	}
	if rec.Count != 1 {
		t.Errorf("Count (confident) = %d, want 1", rec.Count)
	}
	if rec.Doubt != 1 {
		t.Errorf("Doubt = %d, want 1", rec.Doubt)
	}
}
