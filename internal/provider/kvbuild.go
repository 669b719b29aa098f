package provider

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"modernc.org/kv"

	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/kmerio"
)

// IndexBuilder stages k-mer counts in a modernc.org/kv ordered
// key-value store while streaming a FASTA/FASTQ source — the idiomatic
// Go replacement for the original's Jellyfish hash-table build step
// (spec.md §6). Random-order inserts are cheap against kv; Finalize
// then walks the store in key order and emits the compact,
// mmap-friendly internal/kmerio flat index that MmapProvider serves
// from at genotyping time.
type IndexBuilder struct {
	db *kv.DB
	k  int
}

// NewIndexBuilder creates a fresh staging store at path for k-mers of
// length k. An existing file at path is not truncated: kv.Create
// returns an error for it.
func NewIndexBuilder(path string, k int) (*IndexBuilder, error) {
	db, err := kv.Create(path, &kv.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "kvbuild: creating staging store %s", path)
	}
	return &IndexBuilder{db: db, k: k}, nil
}

// Add increments the stored occurrence count of the canonical k-mer
// seq by one.
func (b *IndexBuilder) Add(canonKmer string) error {
	code, err := kmer.Encode(canonKmer)
	if err != nil {
		return nil // non-ACGT window: caller already skipped extraction, defensive no-op
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, code)

	cur, err := b.db.Get(nil, key)
	if err != nil {
		return errors.Wrap(err, "kvbuild: reading staged count")
	}
	var count uint32
	if len(cur) == 4 {
		count = binary.BigEndian.Uint32(cur)
	}
	count++
	val := make([]byte, 4)
	binary.BigEndian.PutUint32(val, count)
	return b.db.Set(key, val)
}

// Close closes the staging store without finalizing it.
func (b *IndexBuilder) Close() error {
	return b.db.Close()
}

// Finalize walks the staging store in ascending key (k-mer code) order
// and writes the mmap-ready flat index to outPath, then closes the
// staging store.
func (b *IndexBuilder) Finalize(outPath string) error {
	defer b.db.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "kvbuild: creating index file %s", outPath)
	}
	defer out.Close()

	var records []kmerio.Record
	enum, _, err := b.db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return kmerio.WriteFlat(out, b.k, records)
		}
		return errors.Wrap(err, "kvbuild: seeking staging store")
	}
	for {
		key, val, err := enum.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "kvbuild: enumerating staging store")
		}
		records = append(records, kmerio.Record{
			Code:  binary.BigEndian.Uint64(key),
			Count: binary.BigEndian.Uint32(val),
		})
	}
	return kmerio.WriteFlat(out, b.k, records)
}
