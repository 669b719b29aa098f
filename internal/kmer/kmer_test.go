package kmer

import "testing"

func TestCanonicalIdempotent(t *testing.T) {
	seqs := []string{"ACGTACGTACG", "TTTTAAAACCC", "GATTACA"}
	for _, s := range seqs {
		c1, ok := Canonical(s)
		if !ok {
			t.Fatalf("Canonical(%q): unexpected non-ACGT", s)
		}
		c2, ok := Canonical(c1)
		if !ok || c2 != c1 {
			t.Errorf("Canonical(Canonical(%q)) = %q, want %q", s, c2, c1)
		}
		rc, _ := RevComp(s)
		c3, _ := Canonical(rc)
		if c3 != c1 {
			t.Errorf("Canonical(revcomp(%q)) = %q, want %q", s, c3, c1)
		}
	}
}

func TestCanonicalPalindrome(t *testing.T) {
	// ACGT is its own reverse complement.
	c, ok := Canonical("ACGT")
	if !ok || c != "ACGT" {
		t.Errorf("Canonical(ACGT) = %q, %v, want ACGT, true", c, ok)
	}
}

func TestRevCompSkipsNonACGT(t *testing.T) {
	if _, ok := RevComp("ACGTN"); ok {
		t.Errorf("RevComp with N should fail")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := "ACGTACGTACGTACGTACGTACGTACGTACG" // 31bp
	code, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got := Decode(code, len(s))
	if got != s {
		t.Errorf("Decode(Encode(%q)) = %q", s, got)
	}
}

func TestExtractCanonicalKmersOverlap(t *testing.T) {
	seq := "ACGTACGTAC"
	k := 4
	km := ExtractCanonicalKmers(k, nil, 0, true, seq)
	if len(km) == 0 {
		t.Fatalf("expected some kmers")
	}
	for kmer := range km {
		if len(kmer) != k {
			t.Errorf("kmer %q has wrong length", kmer)
		}
	}
}

func TestExtractCanonicalKmersNonOverlapStep(t *testing.T) {
	seq := "AAAACCCCGGGGTTTT" // 16bp, k=4 non-overlap -> 4 windows
	got := ExtractCanonicalKmers(4, nil, 0, false, seq)
	total := 0
	for _, n := range got {
		total += n
	}
	if total != 4 {
		t.Errorf("non-overlap extraction got %d occurrences, want 4", total)
	}
}

func TestSelectBestNTieBreak(t *testing.T) {
	counts := map[string]int{"CCCC": 2, "AAAA": 2, "GGGG": 1}
	lookup := func(k string) int { return counts[k] }
	got := SelectBestN(counts, lookup, 2)
	want := []string{"GGGG", "AAAA"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SelectBestN = %v, want %v", got, want)
	}
}
