// Package corpus fetches the public documentation corpus and caches it in
// a local columnar file for the doc query tools.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/doc-layer/internal/messages"
)

// ManifestFileName is the optional per-repository corpus manifest.
const ManifestFileName = "doclayer.toml"

// DefaultCachePath is the corpus cache location relative to the repo root.
const DefaultCachePath = ".doclayer/corpus.parquet"

// Manifest configures which documentation products are fetched and where
// the cache lives.
type Manifest struct {
	Endpoint    string   `toml:"endpoint"`
	Products    []string `toml:"products"`
	CachePath   string   `toml:"cache_path"`
	Concurrency int      `toml:"concurrency"`
}

// DefaultManifest returns the compiled-in manifest used when no
// doclayer.toml exists.
func DefaultManifest() *Manifest {
	return &Manifest{
		Endpoint:    "https://docs.doclayer.dev",
		Products:    []string{"hub", "datasets", "inference"},
		CachePath:   DefaultCachePath,
		Concurrency: 4,
	}
}

// LoadManifest reads the manifest at path. An absent file yields the
// defaults; a present file must parse and validate.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultManifest(), nil
		}
		return nil, fmt.Errorf(messages.ManifestReadFailedFmt, path, err)
	}

	m := DefaultManifest()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf(messages.ManifestParseFailedFmt, path, err)
	}
	if m.Endpoint == "" {
		return nil, fmt.Errorf(messages.ManifestMissingEndpointFmt, path)
	}
	if len(m.Products) == 0 {
		return nil, fmt.Errorf(messages.ManifestNoProductsFmt, path)
	}
	if m.Concurrency <= 0 {
		return nil, fmt.Errorf(messages.ManifestInvalidConcurrencyFmt, path, m.Concurrency)
	}
	return m, nil
}

// ManifestPath returns the manifest location under root.
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestFileName)
}
