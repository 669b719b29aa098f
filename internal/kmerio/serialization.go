// Package kmerio implements two on-disk binary k-mer count formats.
// This file holds the streaming one: a magic number, a small header,
// then sorted (k-mer code, count) pairs varint-delta-encoded. Ported
// from the teacher's serialization.go/uvarint.go, adapted to carry a
// uint32 count alongside every code instead of bare presence.
// internal/provider's external count index uses the fixed-width format
// in flat.go instead.
package kmerio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Magic identifies a nebula k-mer count index file.
var Magic = [8]byte{'.', 'n', 'e', 'b', 'u', 'l', 'a', 'k'}

// MainVersion and MinorVersion are bumped on incompatible/compatible
// format changes respectively.
const (
	MainVersion  uint8 = 1
	MinorVersion uint8 = 0
)

// ErrInvalidFormat means the magic number did not match.
var ErrInvalidFormat = errors.New("kmerio: invalid index file format")

// ErrKMismatch means the index K does not match the expected one.
var ErrKMismatch = errors.New("kmerio: k-mer size mismatch")

var be = binary.BigEndian

// Header describes the index file's metadata.
type Header struct {
	MainVersion  uint8
	MinorVersion uint8
	K            uint8
	Count        uint64 // number of (code, count) records that follow
}

func (h Header) String() string {
	return fmt.Sprintf("nebula k-mer index v%d.%d, k=%d, %d records", h.MainVersion, h.MinorVersion, h.K, h.Count)
}

// Writer streams sorted (code, count) records to w. Callers must write
// codes in strictly ascending order: each code is stored as its
// (unsigned) difference from the previous one, which Reader adds back.
type Writer struct {
	Header
	w           io.Writer
	wroteHeader bool
	last        uint64
	haveLast    bool
	buf         [binary.MaxVarintLen64 * 2]byte
}

// NewWriter returns a Writer for k-mers of length k, expecting count
// records in total (used only to populate the header).
func NewWriter(w io.Writer, k int, count uint64) (*Writer, error) {
	if k <= 0 || k > 32 {
		return nil, fmt.Errorf("kmerio: k must be in [1,32], got %d", k)
	}
	return &Writer{
		Header: Header{MainVersion: MainVersion, MinorVersion: MinorVersion, K: uint8(k), Count: count},
		w:      w,
	}, nil
}

func (wr *Writer) writeHeader() error {
	if _, err := wr.w.Write(Magic[:]); err != nil {
		return err
	}
	if err := binary.Write(wr.w, be, [3]uint8{wr.MainVersion, wr.MinorVersion, wr.K}); err != nil {
		return err
	}
	return binary.Write(wr.w, be, wr.Header.Count)
}

// WriteRecord appends one (code, count) pair. code must be strictly
// greater than the previously written code.
func (wr *Writer) WriteRecord(code uint64, count uint32) error {
	if !wr.wroteHeader {
		if err := wr.writeHeader(); err != nil {
			return err
		}
		wr.wroteHeader = true
	}
	if wr.haveLast && code <= wr.last {
		return fmt.Errorf("kmerio: codes must be written in strictly ascending order (%d after %d)", code, wr.last)
	}
	delta := code
	if wr.haveLast {
		delta = code - wr.last
	}
	n := binary.PutUvarint(wr.buf[:], delta)
	n += binary.PutUvarint(wr.buf[n:], uint64(count))
	if _, err := wr.w.Write(wr.buf[:n]); err != nil {
		return err
	}
	wr.last = code
	wr.haveLast = true
	return nil
}

// Reader reads back what Writer wrote, in order.
type Reader struct {
	Header
	r    *bufio.Reader
	last uint64
	n    uint64
}

// NewReader reads and validates the header, then returns a Reader
// positioned at the first record.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	var m [8]byte
	if _, err := io.ReadFull(br, m[:]); err != nil {
		return nil, errors.Wrap(err, "kmerio: reading magic")
	}
	if m != Magic {
		return nil, ErrInvalidFormat
	}
	var meta [3]uint8
	if err := binary.Read(br, be, &meta); err != nil {
		return nil, errors.Wrap(err, "kmerio: reading header")
	}
	var count uint64
	if err := binary.Read(br, be, &count); err != nil {
		return nil, errors.Wrap(err, "kmerio: reading record count")
	}
	return &Reader{
		Header: Header{MainVersion: meta[0], MinorVersion: meta[1], K: meta[2], Count: count},
		r:      br,
	}, nil
}

// Record is one decoded (code, count) pair.
type Record struct {
	Code  uint64
	Count uint32
}

// Read returns the next record, or io.EOF once Header.Count records
// have been returned.
func (r *Reader) Read() (Record, error) {
	if r.n >= r.Header.Count {
		return Record{}, io.EOF
	}
	delta, err := binary.ReadUvarint(r.r)
	if err != nil {
		return Record{}, err
	}
	count, err := binary.ReadUvarint(r.r)
	if err != nil {
		return Record{}, err
	}
	r.last += delta
	r.n++
	return Record{Code: r.last, Count: uint32(count)}, nil
}
