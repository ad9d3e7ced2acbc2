package crispfont

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/crispfont/imagecodec"
)

// FetchStrategy fetches a font's metrics and atlas bytes (spec §4.6:
// "Strategy selection is a boolean parameter; the choice is made by the
// caller based on the origin"). The metrics blob is the JSON encoding of
// a MinifiedMetrics; the atlas blob is an encoded image (spec §6).
type FetchStrategy interface {
	FetchMetrics(id FontIdentity) ([]byte, error)
	FetchAtlas(id FontIdentity) ([]byte, error)
}

// NetworkFetchStrategy fetches over whatever transport Fetch implements —
// callers supply the transport (http.Get, a test double, etc.) so this
// package stays free of a network dependency.
type NetworkFetchStrategy struct {
	BaseURL string
	Fetch   func(url string) ([]byte, error)
}

// FetchMetrics implements FetchStrategy.
func (s NetworkFetchStrategy) FetchMetrics(id FontIdentity) ([]byte, error) {
	return s.Fetch(s.BaseURL + "/metrics-" + id.String() + ".js")
}

// FetchAtlas implements FetchStrategy.
func (s NetworkFetchStrategy) FetchAtlas(id FontIdentity) ([]byte, error) {
	return s.Fetch(s.BaseURL + "/atlas-" + id.String() + ".png")
}

// LocalFileFetchStrategy fetches from a local directory (spec §6:
// "default is an adjacent font-assets/ folder").
type LocalFileFetchStrategy struct {
	Dir string
}

// FetchMetrics implements FetchStrategy.
func (s LocalFileFetchStrategy) FetchMetrics(id FontIdentity) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, "metrics-"+id.String()+".js"))
}

// FetchAtlas implements FetchStrategy.
func (s LocalFileFetchStrategy) FetchAtlas(id FontIdentity) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, "atlas-"+id.String()+".png"))
}

// LoadResult is the per-font outcome of Loader.LoadFont / LoadFonts.
type LoadResult struct {
	ID     FontIdentity
	Status StatusCode
	Err    error
}

// Loader orchestrates fetching, decoding, and reconstructing a font's
// assets (spec §4.6). Metrics and AtlasData are installed into the
// stores it was constructed with; callers read those stores directly.
type Loader struct {
	Strategy      FetchStrategy
	Metrics       *FontMetricsStore
	Atlases       *AtlasDataStore
	Codec         imagecodec.Codec
	Reconstructor *AtlasReconstructor
}

// NewLoader returns a Loader using the PNG codec and a fresh
// AtlasReconstructor.
func NewLoader(strategy FetchStrategy, metrics *FontMetricsStore, atlases *AtlasDataStore) *Loader {
	return &Loader{
		Strategy:      strategy,
		Metrics:       metrics,
		Atlases:       atlases,
		Codec:         imagecodec.PNGCodec{},
		Reconstructor: NewAtlasReconstructor(),
	}
}

// LoadFont implements spec §4.6's loadFont: metrics before atlas, always
// returning a usable result even on partial failure.
func (l *Loader) LoadFont(id FontIdentity) LoadResult {
	metricsBytes, err := l.Strategy.FetchMetrics(id)
	if err != nil {
		Logger().Warn("crispfont: metrics fetch failed", "id", id.String(), "error", err)
		return LoadResult{ID: id, Status: StatusNoMetrics, Err: err}
	}

	var minified MinifiedMetrics
	if err := json.Unmarshal(metricsBytes, &minified); err != nil {
		Logger().Warn("crispfont: metrics decode failed", "id", id.String(), "error", err)
		return LoadResult{ID: id, Status: StatusNoMetrics, Err: err}
	}
	fm, err := Expand(minified)
	if err != nil {
		Logger().Warn("crispfont: metrics expand failed", "id", id.String(), "error", err)
		return LoadResult{ID: id, Status: StatusNoMetrics, Err: err}
	}
	l.Metrics.Set(id, fm)

	atlasBytes, err := l.Strategy.FetchAtlas(id)
	if err != nil {
		Logger().Warn("crispfont: atlas fetch failed", "id", id.String(), "error", err)
		return LoadResult{ID: id, Status: StatusNoAtlas, Err: err}
	}
	img, err := l.Codec.Decode(atlasBytes)
	if err != nil {
		Logger().Warn("crispfont: atlas decode failed", "id", id.String(), "error", err)
		return LoadResult{ID: id, Status: StatusNoAtlas, Err: err}
	}

	data, err := l.Reconstructor.Reconstruct(id, fm, NewDecodedImageSource(img))
	if err != nil {
		Logger().Warn("crispfont: atlas reconstruction failed", "id", id.String(), "error", err)
		return LoadResult{ID: id, Status: StatusNoAtlas, Err: err}
	}
	l.Atlases.Set(id, data)

	return LoadResult{ID: id, Status: StatusOK}
}

// LoadFonts runs LoadFont for every id in parallel, completing when all
// settle (spec §4.6: "Failures are logged but never reject the whole
// batch"). progress, if non-nil, is called after each completion with the
// running count of settled loads.
func (l *Loader) LoadFonts(ids []FontIdentity, progress func(loaded, total int)) []LoadResult {
	results := make([]LoadResult, len(ids))
	var wg sync.WaitGroup
	var mu sync.Mutex
	settled := 0

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id FontIdentity) {
			defer wg.Done()
			results[i] = l.LoadFont(id)
			if progress != nil {
				mu.Lock()
				settled++
				n := settled
				mu.Unlock()
				progress(n, len(ids))
			}
		}(i, id)
	}
	wg.Wait()
	return results
}

