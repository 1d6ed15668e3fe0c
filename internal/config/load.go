package config

import (
	"github.com/dshills/actionbind/internal/config/loader"
)

// Load reads a bindings file and applies ACTIONBIND_ environment overrides
// on top of it. A missing file yields the environment overrides alone,
// usually empty Bindings. The result is validated.
func Load(path string) (*Bindings, error) {
	return Read(
		loader.NewFileLoader(path),
		loader.NewEnvLoader(loader.DefaultEnvPrefix),
	)
}

// Read merges the maps produced by the loaders, later loaders overriding
// earlier ones, then decodes and validates the result. The loaders' maps
// are copied before merging and are never modified.
func Read(loaders ...loader.Loader) (*Bindings, error) {
	merged := make(map[string]any)
	for _, l := range loaders {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, loader.Clone(m))
	}

	b, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
