package crispfont_test

import (
	"encoding/json"
	"testing"

	"github.com/gogpu/crispfont"
	"github.com/gogpu/crispfont/builder"
	"github.com/gogpu/crispfont/imagecodec"
	"github.com/gogpu/crispfont/rasterhost"
)

// fakeFetchStrategy serves metrics/atlas bytes from memory. Only the
// network-fetch half of the loader is faked: decoding, expansion, and
// atlas reconstruction all run for real against these bytes.
type fakeFetchStrategy struct {
	metrics map[string][]byte
	atlases map[string][]byte
}

func (f *fakeFetchStrategy) FetchMetrics(id crispfont.FontIdentity) ([]byte, error) {
	data, ok := f.metrics[id.String()]
	if !ok {
		return nil, errNotFound(id.String())
	}
	return data, nil
}

func (f *fakeFetchStrategy) FetchAtlas(id crispfont.FontIdentity) ([]byte, error) {
	data, ok := f.atlases[id.String()]
	if !ok {
		return nil, errNotFound(id.String())
	}
	return data, nil
}

type errNotFound string

func (e errNotFound) Error() string { return "fake fetch: not found: " + string(e) }

func buildFakeAssets(t *testing.T, id crispfont.FontIdentity) (metricsJSON, atlasPNG []byte) {
	t.Helper()
	b := builder.New(rasterhost.NewDefaultRasterizer(), builder.CorrectionsSpec{})
	result, err := b.Build(id)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	minified, err := crispfont.MinifyWithVerification(result.Metrics)
	if err != nil {
		t.Fatalf("MinifyWithVerification: %v", err)
	}
	metricsJSON, err = json.Marshal(minified)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	atlasPNG, err = imagecodec.PNGCodec{}.Encode(result.WideAtlas.Pix())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return metricsJSON, atlasPNG
}

func TestLoaderLoadFontSuccess(t *testing.T) {
	id := crispfont.FontIdentity{PixelDensity: 1, Family: "Go Regular", Style: crispfont.StyleNormal, Weight: crispfont.WeightNormal, Size: 16}
	metricsJSON, atlasPNG := buildFakeAssets(t, id)

	strategy := &fakeFetchStrategy{
		metrics: map[string][]byte{id.String(): metricsJSON},
		atlases: map[string][]byte{id.String(): atlasPNG},
	}
	metricsStore := crispfont.NewFontMetricsStore()
	atlasStore := crispfont.NewAtlasDataStore()
	loader := crispfont.NewLoader(strategy, metricsStore, atlasStore)

	result := loader.LoadFont(id)
	if result.Status != crispfont.StatusOK {
		t.Fatalf("LoadFont status = %v, err = %v", result.Status, result.Err)
	}
	if !metricsStore.Has(id) {
		t.Error("metrics store should have an entry after a successful load")
	}
	if !atlasStore.Has(id) {
		t.Error("atlas store should have an entry after a successful load")
	}
}

func TestLoaderLoadFontMissingMetrics(t *testing.T) {
	id := crispfont.FontIdentity{PixelDensity: 1, Family: "Go Regular", Style: crispfont.StyleNormal, Weight: crispfont.WeightNormal, Size: 16}
	strategy := &fakeFetchStrategy{metrics: map[string][]byte{}, atlases: map[string][]byte{}}
	loader := crispfont.NewLoader(strategy, crispfont.NewFontMetricsStore(), crispfont.NewAtlasDataStore())

	result := loader.LoadFont(id)
	if result.Status != crispfont.StatusNoMetrics {
		t.Errorf("status = %v, want StatusNoMetrics", result.Status)
	}
	if result.Err == nil {
		t.Error("expected a non-nil error")
	}
}

func TestLoaderLoadFontMissingAtlasStillInstallsMetrics(t *testing.T) {
	id := crispfont.FontIdentity{PixelDensity: 1, Family: "Go Regular", Style: crispfont.StyleNormal, Weight: crispfont.WeightNormal, Size: 16}
	metricsJSON, _ := buildFakeAssets(t, id)

	strategy := &fakeFetchStrategy{
		metrics: map[string][]byte{id.String(): metricsJSON},
		atlases: map[string][]byte{},
	}
	metricsStore := crispfont.NewFontMetricsStore()
	loader := crispfont.NewLoader(strategy, metricsStore, crispfont.NewAtlasDataStore())

	result := loader.LoadFont(id)
	if result.Status != crispfont.StatusNoAtlas {
		t.Errorf("status = %v, want StatusNoAtlas", result.Status)
	}
	if !metricsStore.Has(id) {
		t.Error("metrics should be installed even when the atlas fetch fails")
	}
}

func TestLoaderLoadFontsRunsAllAndReportsProgress(t *testing.T) {
	idA := crispfont.FontIdentity{PixelDensity: 1, Family: "Go Regular", Style: crispfont.StyleNormal, Weight: crispfont.WeightNormal, Size: 16}
	idB := crispfont.FontIdentity{PixelDensity: 1, Family: "Go Regular", Style: crispfont.StyleNormal, Weight: crispfont.WeightNormal, Size: 20}

	metricsA, atlasA := buildFakeAssets(t, idA)
	metricsB, atlasB := buildFakeAssets(t, idB)

	strategy := &fakeFetchStrategy{
		metrics: map[string][]byte{idA.String(): metricsA, idB.String(): metricsB},
		atlases: map[string][]byte{idA.String(): atlasA, idB.String(): atlasB},
	}
	loader := crispfont.NewLoader(strategy, crispfont.NewFontMetricsStore(), crispfont.NewAtlasDataStore())

	var progressCalls int
	results := loader.LoadFonts([]crispfont.FontIdentity{idA, idB}, func(loaded, total int) {
		progressCalls++
		if total != 2 {
			t.Errorf("progress total = %d, want 2", total)
		}
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Status != crispfont.StatusOK {
			t.Errorf("result for %s: status = %v, err = %v", r.ID.String(), r.Status, r.Err)
		}
	}
	if progressCalls != 2 {
		t.Errorf("progress callback fired %d times, want 2", progressCalls)
	}
}
