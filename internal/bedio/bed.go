// Package bedio reads the candidate SV catalog (spec.md §6). BED
// parsing is one of the explicit external-collaborator concerns
// spec.md §1 calls out of scope for the core; it is implemented here
// with bufio.Scanner rather than a corpus library because the format
// is three tab-separated fields and no package retrieved for this spec
// is BED-specific (see DESIGN.md).
package bedio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/shenwei356/nebula/internal/sv"
)

var whitespace = regexp.MustCompile(`\s+`)

// Track is one parsed BED line plus its sanitized track name.
type Track struct {
	Event sv.Event
	Name  string
	Line  int
}

// KindFromFilename derives the SV kind from the penultimate filename
// component, e.g. "calls.DEL.bed" -> sv.Deletion (spec.md §6).
func KindFromFilename(path string) (sv.Kind, error) {
	base := filepath.Base(path)
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return 0, fmt.Errorf("bedio: cannot derive SV type from filename %q", base)
	}
	switch parts[len(parts)-2] {
	case "DEL":
		return sv.Deletion, nil
	case "INV":
		return sv.Inversion, nil
	default:
		return 0, fmt.Errorf("bedio: unrecognized SV type suffix in filename %q", base)
	}
}

// MaxSpan is the largest SV interval the catalog may contain; larger
// events were already dropped upstream and are skipped here too
// (spec.md §3 invariant, §7 input error).
const MaxSpan = 1_000_000

// ReadCatalog parses path as a BED file. Malformed lines and
// over-sized intervals are logged via onSkip (if non-nil) and skipped,
// never fatal (spec.md §7).
func ReadCatalog(path string, onSkip func(line int, reason string)) ([]Track, error) {
	kind, err := KindFromFilename(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bedio: opening %s: %w", path, err)
	}
	defer f.Close()

	var tracks []Track
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			fields = strings.Fields(line)
		}
		if len(fields) < 3 {
			if onSkip != nil {
				onSkip(lineNo, "fewer than 3 fields")
			}
			continue
		}
		start, err := strconv.Atoi(fields[1])
		if err != nil {
			if onSkip != nil {
				onSkip(lineNo, "non-integer start")
			}
			continue
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			if onSkip != nil {
				onSkip(lineNo, "non-integer end")
			}
			continue
		}
		if end <= start {
			if onSkip != nil {
				onSkip(lineNo, "empty or negative interval")
			}
			continue
		}
		if end-start > MaxSpan {
			if onSkip != nil {
				onSkip(lineNo, "interval exceeds maximum SV span")
			}
			continue
		}
		evt := sv.Event{Chrom: fields[0], Begin: start, End: end, Kind: kind}
		tracks = append(tracks, Track{
			Event: evt,
			Name:  SanitizeName(fmt.Sprintf("%s\t%d\t%d", fields[0], start, end)),
			Line:  lineNo,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("bedio: scanning %s: %w", path, err)
	}
	return tracks, nil
}

// SanitizeName collapses whitespace into underscores, matching the
// original's `re.sub(r'\s+', '_', str(track).strip())` track naming
// (spec.md §4.8).
func SanitizeName(raw string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(raw), "_")
}
