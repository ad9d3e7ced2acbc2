package crispfont

import "github.com/gogpu/crispfont/store"

// FontMetricsStore maps FontIdentity to FontMetrics. Entries are
// inserted by the Loader, never mutated in place, and cleared only by
// Reset (spec §3, "Stores").
type FontMetricsStore struct {
	cache *store.Cache[FontIdentity, FontMetrics]
}

// NewFontMetricsStore returns an empty, unlimited FontMetricsStore.
func NewFontMetricsStore() *FontMetricsStore {
	return &FontMetricsStore{cache: store.New[FontIdentity, FontMetrics](0)}
}

// Get returns the metrics for id, if loaded.
func (s *FontMetricsStore) Get(id FontIdentity) (FontMetrics, bool) { return s.cache.Get(id) }

// Has reports whether id's metrics are loaded.
func (s *FontMetricsStore) Has(id FontIdentity) bool { return s.cache.Has(id) }

// Set installs m for id. Called only by the Loader.
func (s *FontMetricsStore) Set(id FontIdentity, m FontMetrics) { s.cache.Set(id, m) }

// Reset clears every entry.
func (s *FontMetricsStore) Reset() { s.cache.Clear() }

// Len returns the number of fonts with loaded metrics.
func (s *FontMetricsStore) Len() int { return s.cache.Len() }

// AtlasDataStore maps FontIdentity to AtlasData. Spec §3's ordering
// invariant ("metrics must exist before atlas for the same font") is
// enforced by the Loader, not by this store — the store itself accepts
// whatever it is given.
type AtlasDataStore struct {
	cache *store.Cache[FontIdentity, AtlasData]
}

// NewAtlasDataStore returns an empty, unlimited AtlasDataStore.
func NewAtlasDataStore() *AtlasDataStore {
	return &AtlasDataStore{cache: store.New[FontIdentity, AtlasData](0)}
}

// Get returns the atlas data for id, if reconstructed.
func (s *AtlasDataStore) Get(id FontIdentity) (AtlasData, bool) { return s.cache.Get(id) }

// Has reports whether id's atlas data is loaded.
func (s *AtlasDataStore) Has(id FontIdentity) bool { return s.cache.Has(id) }

// Set installs d for id. Called only by the Loader, after reconstruction.
func (s *AtlasDataStore) Set(id FontIdentity, d AtlasData) { s.cache.Set(id, d) }

// Reset clears every entry.
func (s *AtlasDataStore) Reset() { s.cache.Clear() }

// Len returns the number of fonts with loaded atlas data.
func (s *AtlasDataStore) Len() int { return s.cache.Len() }
