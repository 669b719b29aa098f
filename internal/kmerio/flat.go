package kmerio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// FlatMagic identifies the fixed-width, mmap-friendly sibling of the
// varint-delta format: a header followed by a sorted array of 12-byte
// (uint64 code, uint32 count) records at fixed stride, so MmapProvider
// can binary-search it directly over the mapped bytes without decoding
// anything. provider's IndexBuilder.Finalize produces this format from
// a staged modernc.org/kv store; the Writer/Reader streaming format in
// serialization.go is not used by any index build or lookup path.
var FlatMagic = [8]byte{'.', 'n', 'e', 'b', 'f', 'l', 'a', 't'}

// FlatRecordSize is the byte width of one (code, count) record.
const FlatRecordSize = 12

// FlatHeaderSize is the byte width of the fixed header preceding the
// record array: 8 (magic) + 1 (main) + 1 (minor) + 1 (k) + 1 (pad) + 8 (count).
const FlatHeaderSize = 8 + 4 + 8

// WriteFlat writes records (already sorted ascending by Code) in the
// fixed-width mmap format.
func WriteFlat(w io.Writer, k int, records []Record) error {
	if k <= 0 || k > 32 {
		return fmt.Errorf("kmerio: k must be in [1,32], got %d", k)
	}
	if _, err := w.Write(FlatMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, be, [4]uint8{MainVersion, MinorVersion, uint8(k), 0}); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint64(len(records))); err != nil {
		return err
	}
	buf := make([]byte, FlatRecordSize)
	var last uint64
	for i, r := range records {
		if i > 0 && r.Code <= last {
			return fmt.Errorf("kmerio: flat records must be strictly ascending by code")
		}
		last = r.Code
		be.PutUint64(buf[0:8], r.Code)
		be.PutUint32(buf[8:12], r.Count)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// FlatHeader decodes the fixed header from the front of a mapped flat
// index file.
func FlatHeader(data []byte) (Header, error) {
	if len(data) < FlatHeaderSize {
		return Header{}, ErrInvalidFormat
	}
	var m [8]byte
	copy(m[:], data[:8])
	if m != FlatMagic {
		return Header{}, ErrInvalidFormat
	}
	meta := data[8:12]
	count := be.Uint64(data[12:20])
	return Header{MainVersion: meta[0], MinorVersion: meta[1], K: meta[2], Count: count}, nil
}

// FlatLookup binary-searches the record array in data (as produced by
// WriteFlat/FlatHeader) for code, returning its count and whether it
// was found.
func FlatLookup(data []byte, code uint64) (uint32, bool) {
	hdr, err := FlatHeader(data)
	if err != nil {
		return 0, false
	}
	n := int(hdr.Count)
	body := data[FlatHeaderSize:]
	lo, hi := 0, n-1
	for lo <= hi {
		mid := (lo + hi) / 2
		off := mid * FlatRecordSize
		c := be.Uint64(body[off : off+8])
		switch {
		case c == code:
			return be.Uint32(body[off+8 : off+12]), true
		case c < code:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return 0, false
}
