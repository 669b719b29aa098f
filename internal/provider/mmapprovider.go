package provider

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/kmerio"
)

// MmapProvider is the external index variant of spec.md §4.2: it opens
// a memory-mappable internal/kmerio flat index (built by provider's kv
// staging + Finalize) and answers Get via binary search directly over
// the mapped bytes. It is safe for concurrent reads from many workers.
type MmapProvider struct {
	f    *os.File
	m    mmap.MMap
	k    int
	hdr  kmerio.Header
}

// OpenMmapProvider maps path read-only.
func OpenMmapProvider(path string) (*MmapProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	hdr, err := kmerio.FlatHeader(m)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	return &MmapProvider{f: f, m: m, k: int(hdr.K), hdr: hdr}, nil
}

// Close unmaps the index and closes the underlying file.
func (p *MmapProvider) Close() error {
	if err := p.m.Unmap(); err != nil {
		return err
	}
	return p.f.Close()
}

// Get implements Provider.
func (p *MmapProvider) Get(canonKmer string) int {
	code, err := kmer.Encode(canonKmer)
	if err != nil {
		return 0
	}
	count, _ := kmerio.FlatLookup(p.m, code)
	return int(count)
}

// GetWithMetadata implements Provider.
func (p *MmapProvider) GetWithMetadata(canonKmer string) (Record, bool) {
	code, err := kmer.Encode(canonKmer)
	if err != nil {
		return Record{}, false
	}
	count, ok := kmerio.FlatLookup(p.m, code)
	if !ok {
		return Record{}, false
	}
	return Record{Count: count}, true
}
