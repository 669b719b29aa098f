package kmer

import (
	"sort"
)

// Counter looks up a reference-wide occurrence count for a k-mer. The
// Get method value of an internal/provider.Provider has this type.
type Counter func(kmer string) int

// ExtractCanonicalKmers slides a length-k window across each of seqs,
// canonicalizing every window, and returns occurrence multiplicities.
// A window whose 2-bit encoding would fail (non-ACGT) is skipped, not
// fatal (spec.md §4.1). If counter is non-nil, a k-mer whose reference
// count exceeds maxCount is dropped. When overlap is false the window
// advances by k after every *emitted* window; otherwise it advances by
// 1 (spec.md §4.1).
func ExtractCanonicalKmers(k int, counter Counter, maxCount int, overlap bool, seqs ...string) map[string]int {
	out := make(map[string]int)
	for _, s := range seqs {
		i := 0
		for i+k <= len(s) {
			window := s[i : i+k]
			canon, ok := Canonical(window)
			if !ok {
				i++
				continue
			}
			if counter != nil && counter(canon) > maxCount {
				i++
				continue
			}
			out[canon]++
			if overlap {
				i++
			} else {
				i += k
			}
		}
	}
	return out
}

// SelectBestN returns at most n kmers from kmers, keeping those with
// the smallest reference count as reported by counts; ties are broken
// by ascending lexicographic k-mer order (spec.md §4.1). A nil counts
// treats every k-mer as having the same count, like a nil counter in
// ExtractCanonicalKmers.
func SelectBestN(kmers map[string]int, counts Counter, n int) []string {
	if counts == nil {
		counts = func(string) int { return 0 }
	}
	all := make([]string, 0, len(kmers))
	for km := range kmers {
		all = append(all, km)
	}
	sort.Slice(all, func(i, j int) bool {
		ci, cj := counts(all[i]), counts(all[j])
		if ci != cj {
			return ci < cj
		}
		return all[i] < all[j]
	})
	if len(all) <= n {
		return all
	}
	return all[:n]
}
