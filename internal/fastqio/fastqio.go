// Package fastqio streams sequencing reads for counting (spec.md §6,
// "Read source"). It is a thin wrapper over shenwei356/bio's FASTA/Q
// reader, used the same way the teacher's corpus counts k-mers from
// sequence files: shenwei356-unikmer/unikmer/cmd/count.go drives the
// identical fastx.NewDefaultReader / Read loop over record.Seq.Seq.
package fastqio

import (
	"io"

	"github.com/shenwei356/bio/seqio/fastx"
)

// Read is one sequencing read pulled from a FASTA/FASTQ/gzipped file.
type Read struct {
	Name string
	Seq  string
}

// Reader streams Reads from a single file, transparently handling
// FASTA, FASTQ and gzip/xz compression via fastx's own sniffing.
type Reader struct {
	inner *fastx.Reader
}

// Open opens path for streaming.
func Open(path string) (*Reader, error) {
	r, err := fastx.NewDefaultReader(path)
	if err != nil {
		return nil, err
	}
	return &Reader{inner: r}, nil
}

// Next returns the next read, or io.EOF once the file is exhausted.
func (r *Reader) Next() (Read, error) {
	rec, err := r.inner.Read()
	if err != nil {
		return Read{}, err
	}
	return Read{Name: string(rec.Name), Seq: string(rec.Seq.Seq)}, nil
}

// Each calls fn for every read in path, stopping at the first error
// fn returns or at end of file. It opens and closes the reader itself.
func Each(path string, fn func(Read) error) error {
	r, err := Open(path)
	if err != nil {
		return err
	}
	for {
		read, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := fn(read); err != nil {
			return err
		}
	}
}
