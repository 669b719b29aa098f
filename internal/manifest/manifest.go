// Package manifest serializes per-SV k-mer records to JSON and merges
// per-shard batches into a single gzip-compressed file (spec.md §6).
// Grounded on the teacher's own gzip-compressed .unik output, but
// using klauspost/compress/gzip (a dependency the retrieved corpus's
// other indexer, LexicMap, reaches for) rather than the teacher's
// pure Go standard-library gzip, since manifests here are
// JSON documents rather than the teacher's binary k-mer stream and
// benefit from klauspost's faster compression levels.
package manifest

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/gzip"

	"github.com/shenwei356/nebula/internal/sv"
)

// Track is the JSON document emitted for a single SV (spec.md §6):
// its disambiguating inner k-mers split by reference-count class, and
// any novel (non-reference) k-mers observed only in variant
// sequences.
type Track struct {
	Name             string         `json:"name"`
	Chrom            string         `json:"chrom"`
	Begin            int            `json:"begin"`
	End              int            `json:"end"`
	Kind             string         `json:"kind"`
	UniqueInnerKmers []sv.InnerKmer `json:"unique_inner_kmers"`
	InnerKmers       []sv.InnerKmer `json:"inner_kmers"`
	NovelKmers       []string       `json:"novel_kmers"`
}

// WriteTrack writes one track's manifest as plain (uncompressed) JSON
// to path, the per-SV intermediate file C5 produces for C6 to consume.
func WriteTrack(path string, t Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// ReadTrack loads a single track manifest written by WriteTrack.
func ReadTrack(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return Track{}, err
	}
	defer f.Close()
	var t Track
	if err := json.NewDecoder(f).Decode(&t); err != nil {
		return Track{}, err
	}
	return t, nil
}

// Batch maps each track name to the path of its per-SV manifest — the
// index a partition shard writes out after C5, consumed by the
// merge step below (spec.md §4.8 "emit per-shard JSON").
type Batch map[string]string

// WriteMerged gzip-compresses the union of every shard's tracks
// (re-read from their manifest paths, sorted by name for determinism)
// into a single JSON array at path (spec.md §6, A6).
func WriteMerged(path string, shards []Batch) error {
	names := make([]string, 0)
	paths := make(map[string]string)
	for _, shard := range shards {
		for name, p := range shard {
			if _, ok := paths[name]; !ok {
				names = append(names, name)
			}
			paths[name] = p
		}
	}
	sort.Strings(names)

	tracks := make([]Track, 0, len(names))
	for _, name := range names {
		t, err := ReadTrack(paths[name])
		if err != nil {
			return err
		}
		tracks = append(tracks, t)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gw, err := gzip.NewWriterLevel(f, gzip.BestSpeed)
	if err != nil {
		return err
	}
	defer gw.Close()

	enc := json.NewEncoder(gw)
	return enc.Encode(tracks)
}

// ReadMerged decodes a gzip-compressed merged manifest written by
// WriteMerged.
func ReadMerged(path string) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	var tracks []Track
	data, err := io.ReadAll(gr)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}
