package crispfont

// CharacterMetrics is a single glyph's measurement, in CSS pixel units
// unless a field is explicitly suffixed PhysPx elsewhere in this package
// (spec §3). Glyphs with no visible pixels (space) still define Width;
// their ink extents are legitimately zero.
type CharacterMetrics struct {
	// Width is the advance width.
	Width float64

	// ActualBoundingBoxLeft and ActualBoundingBoxRight are the ink extent
	// measured from the pen position.
	ActualBoundingBoxLeft  float64
	ActualBoundingBoxRight float64

	// ActualBoundingBoxAscent and ActualBoundingBoxDescent are the ink's
	// vertical extent measured from the baseline.
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64
}

// Baselines holds the per-font baseline measurements shared by every
// glyph in a FontMetrics (spec §3: "shared baselines ... held once for the
// font").
type Baselines struct {
	FontBoundingBoxAscent  float64
	FontBoundingBoxDescent float64
	HangingBaseline        float64
	AlphabeticBaseline     float64
	IdeographicBaseline    float64
}

// FontMetrics is the immutable per-font record: per-glyph measurements,
// the kerning table, shared baselines, and an optional small-size space
// advancement override (spec §3). Construct one with FontMetricsBuilder.
type FontMetrics struct {
	baselines    Baselines
	perChar      map[rune]CharacterMetrics
	kerningTable map[rune]map[rune]float64

	spaceOverride   float64
	hasSpaceOverride bool
}

// Baselines returns the font's shared baseline measurements.
func (m FontMetrics) Baselines() Baselines { return m.baselines }

// CharacterMetrics returns the metrics for r, if present.
func (m FontMetrics) CharacterMetrics(r rune) (CharacterMetrics, bool) {
	cm, ok := m.perChar[r]
	return cm, ok
}

// Characters returns every character with metrics, in canonical
// CharacterSet order (characters outside the canonical set, if any slipped
// in via a builder, sort after it in code-point order).
func (m FontMetrics) Characters() []rune {
	out := make([]rune, 0, len(m.perChar))
	for r := range m.perChar {
		out = append(out, r)
	}
	sortRunesCanonical(out)
	return out
}

// Kerning returns the adjustment for the (left, right) pair, consulting an
// exact match first and then the "*any*" wildcard on the right side, per
// spec §4.4.
func (m FontMetrics) Kerning(left, right rune) (float64, bool) {
	row, ok := m.kerningTable[left]
	if !ok {
		return 0, false
	}
	if adj, ok := row[right]; ok {
		return adj, true
	}
	if adj, ok := row[kerningWildcard]; ok {
		return adj, true
	}
	return 0, false
}

// kerningWildcard is the rune used internally to represent the "*any*"
// kerning rule on the right-hand side of a pair.
const kerningWildcard rune = -1

// SpaceAdvancementOverride returns the small-size space advancement
// override, if one was set.
func (m FontMetrics) SpaceAdvancementOverride() (float64, bool) {
	return m.spaceOverride, m.hasSpaceOverride
}

// sortRunesCanonical sorts runes by their CharacterSet index when present,
// falling back to code-point order for anything outside the canonical set.
func sortRunesCanonical(runes []rune) {
	rank := func(r rune) int {
		if i, ok := characterIndex[r]; ok {
			return i
		}
		return CharacterSetSize + int(r)
	}
	// insertion sort: CharacterSetSize is small (204) and this only ever
	// runs over a single font's character list.
	for i := 1; i < len(runes); i++ {
		for j := i; j > 0 && rank(runes[j]) < rank(runes[j-1]); j-- {
			runes[j], runes[j-1] = runes[j-1], runes[j]
		}
	}
}

// FontMetricsBuilder accumulates per-glyph measurements and baselines and
// freezes them into an immutable FontMetrics. Create one with
// NewFontMetricsBuilder: the zero value has nil maps, so
// SetCharacterMetrics and SetKerning panic on it.
type FontMetricsBuilder struct {
	baselines    Baselines
	perChar      map[rune]CharacterMetrics
	kerningTable map[rune]map[rune]float64

	spaceOverride    float64
	hasSpaceOverride bool
}

// NewFontMetricsBuilder returns an empty builder.
func NewFontMetricsBuilder() *FontMetricsBuilder {
	return &FontMetricsBuilder{
		perChar:      make(map[rune]CharacterMetrics),
		kerningTable: make(map[rune]map[rune]float64),
	}
}

// SetBaselines sets the shared per-font baselines.
func (b *FontMetricsBuilder) SetBaselines(baselines Baselines) *FontMetricsBuilder {
	b.baselines = baselines
	return b
}

// SetCharacterMetrics records the measurement for r.
func (b *FontMetricsBuilder) SetCharacterMetrics(r rune, cm CharacterMetrics) *FontMetricsBuilder {
	b.perChar[r] = cm
	return b
}

// SetKerning records a left/right kerning adjustment. Pass KerningWildcard
// as right to install a "*any*" rule for left.
func (b *FontMetricsBuilder) SetKerning(left, right rune, adjustment float64) *FontMetricsBuilder {
	row, ok := b.kerningTable[left]
	if !ok {
		row = make(map[rune]float64)
		b.kerningTable[left] = row
	}
	row[right] = adjustment
	return b
}

// KerningWildcard is the public spelling of the "*any*" kerning rule.
const KerningWildcard = kerningWildcard

// SetSpaceAdvancementOverride sets the small-size space advancement
// override.
func (b *FontMetricsBuilder) SetSpaceAdvancementOverride(px float64) *FontMetricsBuilder {
	b.spaceOverride = px
	b.hasSpaceOverride = true
	return b
}

// Build freezes the accumulated state into an immutable FontMetrics. It
// performs no character-set validation; that check belongs to
// Minify (spec §4.1) because not every FontMetrics value
// needs to be minified (e.g. one under construction by the builder before
// corrections are applied).
func (b *FontMetricsBuilder) Build() FontMetrics {
	perChar := make(map[rune]CharacterMetrics, len(b.perChar))
	for r, cm := range b.perChar {
		perChar[r] = cm
	}
	kerning := make(map[rune]map[rune]float64, len(b.kerningTable))
	for left, row := range b.kerningTable {
		copied := make(map[rune]float64, len(row))
		for right, adj := range row {
			copied[right] = adj
		}
		kerning[left] = copied
	}
	return FontMetrics{
		baselines:        b.baselines,
		perChar:          perChar,
		kerningTable:      kerning,
		spaceOverride:    b.spaceOverride,
		hasSpaceOverride: b.hasSpaceOverride,
	}
}
