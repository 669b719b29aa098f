// Package sv models a single candidate structural variant: its padded
// reference sequence and the signature/inner k-mers derived from it
// (spec.md §3, §4.3). It is grounded on the teacher's pattern of
// materializing a sequence once per record and deriving k-mer sets
// from slices of it, generalized from unikmer/iterator.go's flat
// sliding-window extraction to the SV-specific head/tail/junction
// bookkeeping the original's kmer/sv.py performs.
package sv

import (
	"fmt"

	"github.com/shenwei356/nebula/internal/genome"
	"github.com/shenwei356/nebula/internal/kmer"
)

// Kind distinguishes the two supported SV categories (spec.md §3).
type Kind uint8

const (
	Deletion Kind = iota
	Inversion
)

func (k Kind) String() string {
	switch k {
	case Deletion:
		return "DEL"
	case Inversion:
		return "INV"
	default:
		return "UNKNOWN"
	}
}

// Event is an immutable candidate SV as read from the input catalog
// (spec.md §3). Begin/End are 0-based half-open.
type Event struct {
	Chrom string
	Begin int
	End   int
	Kind  Kind
}

// Offset shifts an Event's two endpoints by (Begin, End) within
// [-R, R], the grid searched by internal/breakpoint (spec.md §3).
type Offset struct {
	Begin int
	End   int
}

// Occurrence is one reference-wide position where an inner k-mer
// appears, augmented with its flanks (spec.md §3, §4.5).
type Occurrence struct {
	Chrom      string
	Pos        int
	Forward    bool
	// Positive marks the occurrence falling inside the SV interval;
	// every other occurrence is negative (spec.md §3 invariant).
	Positive   bool
	LeftFlank  []string
	RightFlank []string
}

// InnerKmer is a candidate disambiguating k-mer interior to an event,
// with its reference-wide occurrences (spec.md §3).
type InnerKmer struct {
	Kmer        string
	RefCount    int
	Occurrences []Occurrence
}

// CountedKmer extends InnerKmer with the tallies internal/counter (C6)
// produces and the per-track multiplicity map the LP builder (C7)
// consumes (spec.md §3).
type CountedKmer struct {
	InnerKmer
	Count   int
	Doubt   int
	Total   int
	Residue int
	Tracks  map[string]int
}

// PositiveMarkers returns the union of locally-unique flank k-mers
// across the positive occurrence (spec.md §4.5 step 5, consumed by
// internal/counter's p/n attribution rule).
func (ik InnerKmer) PositiveMarkers() []string {
	var out []string
	for _, occ := range ik.Occurrences {
		if occ.Positive {
			out = append(out, occ.LeftFlank...)
			out = append(out, occ.RightFlank...)
		}
	}
	return out
}

// NegativeMarkers returns the union of locally-unique flank k-mers
// across every negative occurrence.
func (ik InnerKmer) NegativeMarkers() []string {
	var out []string
	for _, occ := range ik.Occurrences {
		if !occ.Positive {
			out = append(out, occ.LeftFlank...)
			out = append(out, occ.RightFlank...)
		}
	}
	return out
}

// Padded is the materialized padded reference sequence for an event,
// built once per SV and reused for every offset in the grid search
// (spec.md §4.3's "materialize the padded reference sequence once").
type Padded struct {
	Event Event
	Seq   string
	// Start is the reference coordinate Seq[0] corresponds to.
	Start int
	// Radius is the grid-search radius baked into this padding; it
	// must be large enough that every offset pair in [-Radius,Radius]
	// stays inside Seq.
	Radius int
	k      int
}

// Sequence pads Event by (radius+k) on each side and loads the result
// from ref, the way the teacher pads extraction windows to guarantee
// every sliding k-mer window stays in bounds.
func Sequence(ref *genome.Reference, evt Event, radius, k int) (Padded, error) {
	pad := radius + k
	start := evt.Begin - pad
	seq, err := ref.Sequence(evt.Chrom, start, evt.End+pad)
	if err != nil {
		return Padded{}, fmt.Errorf("sv: padding %s:%d-%d: %w", evt.Chrom, evt.Begin, evt.End, err)
	}
	if start < 0 {
		start = 0
	}
	return Padded{Event: evt, Seq: seq, Start: start, Radius: radius, k: k}, nil
}

// K returns the k-mer length this padding was built for.
func (p Padded) K() int { return p.k }

// interiorBounds returns the [begin,end) half-open interior window of
// p.Seq for offset pair off, in p.Seq-local coordinates.
func (p Padded) interiorBounds(off Offset) (begin, end int) {
	begin = p.Radius + p.k + off.Begin
	end = len(p.Seq) - p.Radius - p.k + off.End
	return
}

// ReferenceSignature returns the head/tail k-mer pair straddling the
// shifted endpoints (k bases before, k bases after), read directly off
// the untouched reference (spec.md §4.3's seq[delta_b+R : ...] formula,
// matching the original's get_reference_signature_kmers).
func (p Padded) ReferenceSignature(off Offset) (head, tail string, ok bool) {
	begin, end := p.interiorBounds(off)
	if end-begin < 2*p.k {
		return "", "", false
	}
	L := len(p.Seq)
	headStart := begin - p.k
	tailStart := end - p.k
	if headStart < 0 || headStart+2*p.k > L || tailStart < 0 || tailStart+2*p.k > L {
		return "", "", false
	}
	head = p.Seq[headStart : headStart+2*p.k]
	tail = p.Seq[tailStart : tailStart+2*p.k]
	return head, tail, true
}

// VariantSignature returns the junction k-mers of the variant sequence
// synthesized for offset pair off: for a deletion, the interior is
// excised; for an inversion, it is reverse-complemented in place.
// Returns ok=false in the degenerate case 2k > interior_length
// (spec.md §4.3).
func (p Padded) VariantSignature(off Offset) (head, tail string, ok bool) {
	begin, end := p.interiorBounds(off)
	if end <= begin || end-begin < 2*p.k {
		return "", "", false
	}

	switch p.Event.Kind {
	case Deletion:
		if begin < p.k || len(p.Seq)-end < p.k {
			return "", "", false
		}
		junction := p.Seq[begin-p.k:begin] + p.Seq[end:end+p.k]
		return junction[:2*p.k], junction[len(junction)-2*p.k:], true

	case Inversion:
		interior := p.Seq[begin:end]
		rc, rok := kmer.RevComp(interior)
		if !rok {
			return "", "", false
		}
		variant := p.Seq[:begin] + rc + p.Seq[end:]
		if begin < p.k || len(p.Seq)-end < p.k {
			return "", "", false
		}
		head = variant[begin-p.k : begin+p.k]
		tail = variant[end-p.k : end+p.k]
		return head, tail, true
	}
	return "", "", false
}

// InteriorSequence returns the unmodified reference interior for
// offset pair off — the window internal/innerkmer draws candidate
// inner k-mers from.
func (p Padded) InteriorSequence(off Offset) string {
	begin, end := p.interiorBounds(off)
	if begin < 0 {
		begin = 0
	}
	if end > len(p.Seq) {
		end = len(p.Seq)
	}
	if end <= begin {
		return ""
	}
	return p.Seq[begin:end]
}

// InnerKmers returns candidate inner k-mers of the interior at the
// zero offset, canonicalized and filtered by reference count, keeping
// at most n with smallest count (spec.md §4.3, §4.5).
func InnerKmers(k int, interior string, counter kmer.Counter, maxCount, n int, overlap bool) []string {
	found := kmer.ExtractCanonicalKmers(k, counter, maxCount, overlap, interior)
	return kmer.SelectBestN(found, counter, n)
}
