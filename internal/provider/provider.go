// Package provider implements the polymorphic count-provider contract
// of spec.md §4.2: Get is pure and total, and missing keys return 0
// rather than an error (spec.md §7 — provider errors are not errors).
// Two concrete variants are offered: MapProvider (in-memory, loaded from
// a prior stage's output; O(1)-expected lookups) and MmapProvider
// (backed by the memory-mappable internal/kmerio flat index built by
// the index-build subcommand; lookups are a binary search, O(log n)).
package provider

// Record carries the metadata a provider can attach to a k-mer beyond
// its bare count, when available.
type Record struct {
	Count uint32
}

// Provider is the capability every count source implements.
type Provider interface {
	// Get returns the reference-wide or sample-wide occurrence count
	// of kmer, or 0 if it is absent.
	Get(kmer string) int
	// GetWithMetadata returns the full Record for kmer, if present.
	GetWithMetadata(kmer string) (Record, bool)
}
