package cmd

import (
	"encoding/json"
	"os"

	"github.com/shenwei356/nebula/internal/config"
	"github.com/shenwei356/nebula/internal/provider"
)

// handle bundles an open provider.Provider with whatever teardown it
// needs, so every subcommand can `defer sp.close()` uniformly
// regardless of which backend was selected.
type handle struct {
	provider.Provider
	closer func() error
}

func (h handle) close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer()
}

// loadProvider opens the count-provider backend selected by
// cfg.Simulation: a JSON-encoded map[string]uint32 under --simulation
// (spec.md §4.2's in-memory map variant, used for simulated/toy runs),
// or the mmap-backed external flat index otherwise.
func loadProvider(cfg config.Configuration, path string) (handle, error) {
	if cfg.Simulation {
		f, err := os.Open(path)
		if err != nil {
			return handle{}, err
		}
		defer f.Close()
		var counts map[string]uint32
		if err := json.NewDecoder(f).Decode(&counts); err != nil {
			return handle{}, err
		}
		return handle{Provider: provider.NewMapProvider(counts)}, nil
	}

	mp, err := provider.OpenMmapProvider(path)
	if err != nil {
		return handle{}, err
	}
	return handle{Provider: mp, closer: mp.Close}, nil
}
