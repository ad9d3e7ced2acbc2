package crispfont

import (
	"hash/fnv"
	"math"

	"github.com/gogpu/crispfont/store"
)

// measureCacheDefaultCapacity bounds the measurement cache so a caller
// that measures unboundedly many distinct strings doesn't leak memory
// (spec §4.3.1): oldest entries are evicted once exceeded.
const measureCacheDefaultCapacity = 4096

// measureKey identifies a cached measurement: the text, the font identity
// it was measured against, and the TextProperties that influenced the
// result (spec §4.3.1, adapting the teacher's shaping-cache key pattern of
// hashing text + font + settings into one comparable struct). The
// FontMetrics and AtlasData values passed to MeasureText are not part of
// the key: the identity stands in for them.
type measureKey struct {
	textHash  uint64
	font      FontIdentity
	propsHash uint64
}

func hashRunes(text []rune) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 4)
	for _, r := range text {
		buf[0] = byte(r)
		buf[1] = byte(r >> 8)
		buf[2] = byte(r >> 16)
		buf[3] = byte(r >> 24)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

func hashTextProperties(props TextProperties) uint64 {
	h := fnv.New64a()
	writeFloat := func(v float64) {
		bits := math.Float64bits(v)
		buf := make([]byte, 8)
		for i := 0; i < 8; i++ {
			buf[i] = byte(bits >> (8 * i))
		}
		_, _ = h.Write(buf)
	}
	writeFloat(props.KerningSizeCutoff)
	for _, b := range props.KerningDiscretization {
		writeFloat(b.Min)
		writeFloat(b.Max)
		writeFloat(b.Adjustment)
	}
	for r, v := range props.AdvancementOverrides {
		writeFloat(float64(r))
		writeFloat(v)
	}
	return h.Sum64()
}

// MeasureCache memoizes MeasureText results keyed on (text, font,
// TextProperties). It never changes what MeasureText would have
// returned; it only avoids recomputing it for repeated calls (spec
// §4.3.1).
type MeasureCache struct {
	cache *store.Cache[measureKey, TextMetrics]
}

// NewMeasureCache returns an empty MeasureCache with the default
// capacity.
func NewMeasureCache() *MeasureCache {
	return &MeasureCache{cache: store.New[measureKey, TextMetrics](measureCacheDefaultCapacity)}
}

// MeasureText returns engine.MeasureText(text, id, metrics, atlas, props),
// computing and caching it on a miss.
func (c *MeasureCache) MeasureText(engine *TextEngine, text []rune, id FontIdentity, metrics FontMetrics, atlas *AtlasData, props TextProperties) TextMetrics {
	key := measureKey{textHash: hashRunes(text), font: id, propsHash: hashTextProperties(props)}
	if cached, ok := c.cache.Get(key); ok {
		return cached
	}
	result := engine.MeasureText(text, id, metrics, atlas, props)
	c.cache.Set(key, result)
	return result
}

// Reset clears every cached measurement.
func (c *MeasureCache) Reset() { c.cache.Clear() }
