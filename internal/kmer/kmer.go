// Package kmer provides the k-mer primitives shared by every stage of
// the genotyping pipeline: canonicalization, reverse-complement, 2-bit
// packing (k<=32, ported from the teacher's Encode/Decode), and the
// sliding-window extraction and best-n selection rules of spec.md §4.1.
package kmer

import (
	"errors"
)

// ErrKOverflow means k is outside [1, 32], the range a uint64 code can
// hold two bits per base for.
var ErrKOverflow = errors.New("kmer: k (1-32) overflow")

// ErrIllegalBase means a byte outside {A,C,G,T} (upper case) was seen.
var ErrIllegalBase = errors.New("kmer: illegal base")

// complement maps A<->T, C<->G; callers must upper-case first.
func complement(b byte) (byte, bool) {
	switch b {
	case 'A':
		return 'T', true
	case 'T':
		return 'A', true
	case 'C':
		return 'G', true
	case 'G':
		return 'C', true
	}
	return 0, false
}

// RevComp returns the reverse complement of seq. seq must already be
// upper-cased ACGT; a non-ACGT byte returns ok=false (the caller skips
// the window rather than failing the whole scan, per spec.md §4.1).
func RevComp(seq string) (string, bool) {
	out := make([]byte, len(seq))
	n := len(seq)
	for i := 0; i < n; i++ {
		c, ok := complement(seq[i])
		if !ok {
			return "", false
		}
		out[n-1-i] = c
	}
	return string(out), true
}

// Canonical returns the lexicographically smaller of seq and its
// reverse complement — the unique identity used everywhere in the
// pipeline except when in-read position matters (spec.md §3).
func Canonical(seq string) (string, bool) {
	rc, ok := RevComp(seq)
	if !ok {
		return "", false
	}
	if seq <= rc {
		return seq, true
	}
	return rc, true
}

// Encode packs a k<=32 ACGT string into a 2-bit uint64 code, the
// representation internal/kmerio persists on disk. Ported from the
// teacher's kmer.go Encode.
func Encode(seq string) (uint64, error) {
	k := len(seq)
	if k == 0 || k > 32 {
		return 0, ErrKOverflow
	}
	var code uint64
	for i := 0; i < k; i++ {
		var bits uint64
		switch seq[k-1-i] {
		case 'A':
			bits = 0
		case 'C':
			bits = 1
		case 'G':
			bits = 2
		case 'T':
			bits = 3
		default:
			return 0, ErrIllegalBase
		}
		code |= bits << uint(i*2)
	}
	return code, nil
}

var bit2base = [4]byte{'A', 'C', 'G', 'T'}

// Decode unpacks a 2-bit code back to its k-length ACGT string.
func Decode(code uint64, k int) string {
	buf := make([]byte, k)
	for i := 0; i < k; i++ {
		buf[k-1-i] = bit2base[code&3]
		code >>= 2
	}
	return string(buf)
}
