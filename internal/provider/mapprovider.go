package provider

// MapProvider is the in-memory variant of spec.md §4.2: a mapping
// loaded wholesale from a prior stage's output (a simulation run, or a
// JSON-decoded manifest). Missing keys return 0, never an error.
type MapProvider struct {
	counts map[string]uint32
}

// NewMapProvider wraps an existing map. The map is not copied; callers
// must not mutate it concurrently with provider reads.
func NewMapProvider(counts map[string]uint32) *MapProvider {
	if counts == nil {
		counts = map[string]uint32{}
	}
	return &MapProvider{counts: counts}
}

// Get implements Provider.
func (p *MapProvider) Get(kmer string) int {
	return int(p.counts[kmer])
}

// GetWithMetadata implements Provider.
func (p *MapProvider) GetWithMetadata(kmer string) (Record, bool) {
	c, ok := p.counts[kmer]
	if !ok {
		return Record{}, false
	}
	return Record{Count: c}, true
}
