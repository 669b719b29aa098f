// Package genome provides indexed, case-insensitive random access to
// the reference FASTA (spec.md §6), grounded on biogo/hts/fai the way
// kortschak-ins drives BLAST-hit coordinate extraction: an index is
// built once, then substrings are pulled directly off disk without
// loading whole chromosomes into the heap.
package genome

import (
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/biogo/hts/fai"
	"github.com/pkg/errors"
)

// Reference is a read-only handle on an indexed FASTA file.
type Reference struct {
	f     *os.File
	idx   fai.Index
	fa    *fai.File
	names map[string]string // lower-cased chrom name -> index's name
}

// Open indexes (or reuses a sibling .fai index for) the FASTA at path.
func Open(path string) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "genome: opening %s", path)
	}

	var idx fai.Index
	if faiFile, ferr := os.Open(path + ".fai"); ferr == nil {
		idx, err = fai.ReadFrom(faiFile)
		faiFile.Close()
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "genome: reading .fai index")
		}
	} else {
		idx, err = fai.NewIndex(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "genome: building fasta index")
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
	}

	names := make(map[string]string, len(idx))
	for _, rec := range idx {
		names[strings.ToLower(rec.Name)] = rec.Name
	}

	return &Reference{
		f:     f,
		idx:   idx,
		fa:    fai.NewFile(f, idx),
		names: names,
	}, nil
}

// Close releases the underlying file handle.
func (r *Reference) Close() error { return r.f.Close() }

// HasChrom reports whether chrom (case-insensitively) is present.
func (r *Reference) HasChrom(chrom string) bool {
	_, ok := r.names[strings.ToLower(chrom)]
	return ok
}

// Length returns the chromosome's length, or -1 if it is unknown.
func (r *Reference) Length(chrom string) int {
	name, ok := r.names[strings.ToLower(chrom)]
	if !ok {
		return -1
	}
	for _, rec := range r.idx {
		if rec.Name == name {
			return rec.Length
		}
	}
	return -1
}

// Sequence returns the upper-cased substring [start, end) of chrom,
// clamped to the chromosome's bounds. chrom lookup is case-insensitive
// (spec.md §6).
func (r *Reference) Sequence(chrom string, start, end int) (string, error) {
	name, ok := r.names[strings.ToLower(chrom)]
	if !ok {
		return "", errors.Errorf("genome: unknown chromosome %q", chrom)
	}
	if start < 0 {
		start = 0
	}
	if l := r.Length(name); end > l {
		end = l
	}
	if end <= start {
		return "", nil
	}
	rc, err := r.fa.SeqRange(name, start, end)
	if err != nil {
		return "", errors.Wrapf(err, "genome: reading %s:%d-%d", name, start, end)
	}
	data, err := ioutil.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(string(data)), nil
}

// Chromosomes returns the names of every indexed chromosome, in index
// order.
func (r *Reference) Chromosomes() []string {
	names := make([]string, len(r.idx))
	for i, rec := range r.idx {
		names[i] = rec.Name
	}
	return names
}
