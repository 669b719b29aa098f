package provider

import (
	"os"
	"sort"

	"github.com/twotwotwo/sorts/sortutil"

	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/kmerio"
)

// WriteFlatFromMap encodes an in-memory k-mer count map (e.g. a
// simulation run's MapProvider backing store, which arrives in
// arbitrary map-iteration order) into the sorted on-disk flat index
// MmapProvider serves from. Sorting the uint64 codes is delegated to
// twotwotwo/sorts/sortutil the way the teacher's own cmd/common.go and
// cmd/info.go sort large uint64 ID slices before a merge pass.
func WriteFlatFromMap(outPath string, k int, counts map[string]uint32) error {
	codes := make([]uint64, 0, len(counts))
	byCode := make(map[uint64]uint32, len(counts))
	for km, count := range counts {
		code, err := kmer.Encode(km)
		if err != nil {
			continue // non-ACGT/oversized key: defensive skip, never fatal
		}
		if _, dup := byCode[code]; !dup {
			codes = append(codes, code)
		}
		byCode[code] = count
	}
	sortutil.Uint64s(codes)

	records := make([]kmerio.Record, len(codes))
	for i, code := range codes {
		records[i] = kmerio.Record{Code: code, Count: byCode[code]}
	}
	// sortutil.Uint64s is not guaranteed stable against duplicate
	// insertion order upstream, but codes are already deduplicated
	// above, so this is just a final sanity check of the invariant
	// internal/kmerio.WriteFlat requires (ascending, unique codes).
	if !sort.SliceIsSorted(records, func(i, j int) bool { return records[i].Code < records[j].Code }) {
		sort.Slice(records, func(i, j int) bool { return records[i].Code < records[j].Code })
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return kmerio.WriteFlat(f, k, records)
}
