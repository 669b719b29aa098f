package provider

import "testing"

func TestMapProviderMissingKeyIsZero(t *testing.T) {
	p := NewMapProvider(map[string]uint32{"ACGT": 3})
	if got := p.Get("ACGT"); got != 3 {
		t.Errorf("Get(ACGT) = %d, want 3", got)
	}
	if got := p.Get("TTTT"); got != 0 {
		t.Errorf("Get(missing) = %d, want 0", got)
	}
	if _, ok := p.GetWithMetadata("TTTT"); ok {
		t.Errorf("GetWithMetadata(missing) ok = true, want false")
	}
}

func TestMapProviderNilMap(t *testing.T) {
	p := NewMapProvider(nil)
	if got := p.Get("ACGT"); got != 0 {
		t.Errorf("Get on nil-backed provider = %d, want 0", got)
	}
}
