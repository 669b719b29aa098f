package bedio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shenwei356/nebula/internal/sv"
)

func TestKindFromFilename(t *testing.T) {
	cases := map[string]sv.Kind{
		"calls.DEL.bed":       sv.Deletion,
		"calls.INV.bed":       sv.Inversion,
		"/abs/path/x.INV.bed": sv.Inversion,
	}
	for name, want := range cases {
		got, err := KindFromFilename(name)
		if err != nil {
			t.Fatalf("KindFromFilename(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("KindFromFilename(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := KindFromFilename("calls.bed"); err == nil {
		t.Errorf("expected error for filename with no type component")
	}
}

func TestReadCatalogSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.DEL.bed")
	content := "chr1\t100\t200\textra\nchr2\tnotanumber\t300\nchr1\t500\t400\n# comment\n\nchr3\t10\t20\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var skipped []int
	tracks, err := ReadCatalog(path, func(line int, reason string) {
		skipped = append(skipped, line)
	})
	if err != nil {
		t.Fatalf("ReadCatalog: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2: %+v", len(tracks), tracks)
	}
	if len(skipped) != 2 {
		t.Errorf("got %d skipped lines, want 2: %v", len(skipped), skipped)
	}
	if tracks[0].Event.Chrom != "chr1" || tracks[0].Event.Begin != 100 || tracks[0].Event.End != 200 {
		t.Errorf("unexpected first track: %+v", tracks[0])
	}
	if tracks[0].Event.Kind != sv.Deletion {
		t.Errorf("expected Deletion kind from *.DEL.bed filename")
	}
}

func TestSanitizeNameCollapsesWhitespace(t *testing.T) {
	got := SanitizeName("  chr1\t100\t200  ")
	want := "chr1_100_200"
	if got != want {
		t.Errorf("SanitizeName = %q, want %q", got, want)
	}
}
