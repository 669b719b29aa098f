package kmerio

import (
	"bytes"
	"io"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	records := []Record{
		{Code: 10, Count: 1},
		{Code: 25, Count: 7},
		{Code: 1000, Count: 300},
	}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 31, uint64(len(records)))
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, r := range records {
		if err := w.WriteRecord(r.Code, r.Count); err != nil {
			t.Fatalf("WriteRecord: %v", err)
		}
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.K != 31 {
		t.Errorf("K = %d, want 31", r.K)
	}
	var got []Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		got = append(got, rec)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i, rec := range records {
		if got[i] != rec {
			t.Errorf("record %d = %+v, want %+v", i, got[i], rec)
		}
	}
}

func TestWriteRecordRejectsUnsortedCodes(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, 31, 2)
	if err := w.WriteRecord(100, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteRecord(50, 1); err == nil {
		t.Errorf("expected error writing out-of-order code")
	}
}

func TestInvalidMagic(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("not a valid index header...............")))
	if err != ErrInvalidFormat {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}
