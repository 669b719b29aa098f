package partition

import "testing"

func TestShardIsDeterministicGivenW(t *testing.T) {
	keys := []Key{"chr1_500_600", "chr1_100_200", "chr2_10_20", "chr1_300_400"}
	a := Shard(keys, 2)
	b := Shard(append([]Key(nil), keys...), 2)
	for i := range a {
		if len(a[i]) != len(b[i]) {
			t.Fatalf("shard %d length differs across runs: %d vs %d", i, len(a[i]), len(b[i]))
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Errorf("shard %d[%d] = %q, want %q", i, j, b[i][j], a[i][j])
			}
		}
	}
}

func TestShardCoversEveryKeyExactlyOnce(t *testing.T) {
	keys := []Key{"a", "b", "c", "d", "e"}
	shards := Shard(keys, 3)
	seen := make(map[Key]int)
	for _, shard := range shards {
		for _, k := range shard {
			seen[k]++
		}
	}
	if len(seen) != len(keys) {
		t.Fatalf("got %d distinct keys across shards, want %d", len(seen), len(keys))
	}
	for k, count := range seen {
		if count != 1 {
			t.Errorf("key %q appeared %d times, want 1", k, count)
		}
	}
}

func TestMergeCombinesShardsByLexicographicKey(t *testing.T) {
	shards := []map[Key]interface{}{
		{"b": 2, "a": 1},
		{"c": 3},
	}
	merged := Merge(shards)
	if len(merged) != 3 {
		t.Fatalf("got %d entries, want 3", len(merged))
	}
	if merged["a"] != 1 || merged["b"] != 2 || merged["c"] != 3 {
		t.Errorf("unexpected merge result: %+v", merged)
	}
}
