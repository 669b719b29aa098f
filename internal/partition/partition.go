// Package partition deterministically shards candidate SVs across W
// worker tasks and merges their per-shard results back together
// (spec.md §4.8). Grounded on the teacher's GOMAXPROCS-sized worker
// fan-out in unikmer/cmd/count.go, generalized from file-level
// sharding to track-name-keyed round robin.
package partition

import "sort"

// Key is the order-preserving sharding key spec.md §4.8 specifies:
// the track name with whitespace stripped (bedio.SanitizeName already
// produces this form for every track read from the catalog).
type Key = string

// Shard assigns items to W worker buckets by round-robin over keys,
// sorted first so the assignment is deterministic given W regardless
// of the input slice's original order (spec.md §4.8 "Deterministic
// given W").
func Shard(keys []Key, w int) [][]Key {
	if w < 1 {
		w = 1
	}
	sorted := append([]Key(nil), keys...)
	sort.Strings(sorted)

	shards := make([][]Key, w)
	for i, k := range sorted {
		shards[i%w] = append(shards[i%w], k)
	}
	return shards
}

// Merge combines per-shard result maps into one, keyed
// lexicographically (spec.md §4.8 "the reducer merges shards by key
// (lexicographic)"). Keys present in more than one shard are an error
// condition upstream (partitioning is supposed to be disjoint); Merge
// resolves them by last-shard-wins, since shard order here is already
// the deterministic lexicographic order Shard produced.
func Merge(shards []map[Key]interface{}) map[Key]interface{} {
	out := make(map[Key]interface{})
	keys := make([]Key, 0)
	seen := make(map[Key]bool)
	for _, shard := range shards {
		for k := range shard {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, shard := range shards {
			if v, ok := shard[k]; ok {
				out[k] = v
			}
		}
	}
	return out
}
