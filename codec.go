package crispfont

import (
	"encoding/json"
	"fmt"
)

// MinifiedBaselines is the "b" field of a minified metrics blob: the
// font's shared baseline measurements, extracted once (spec §4.1).
type MinifiedBaselines struct {
	FontBoundingBoxAscent  float64 `json:"fba" yaml:"fba"`
	FontBoundingBoxDescent float64 `json:"fbd" yaml:"fbd"`
	HangingBaseline        float64 `json:"hb" yaml:"hb"`
	AlphabeticBaseline     float64 `json:"ab" yaml:"ab"`
	IdeographicBaseline    float64 `json:"ib" yaml:"ib"`
}

// MinifiedMetrics is the compact, on-disk shape of a FontMetrics (spec
// §4.1). Field names are part of the on-disk contract and must not change.
type MinifiedMetrics struct {
	// Kerning ("k") is the nested kerning table, left char -> right char ->
	// adjustment. Map keys are single-character strings, except the
	// wildcard right-hand key "*any*".
	Kerning map[string]map[string]float64 `json:"k" yaml:"k"`

	// Base ("b") is the font's shared baseline measurements.
	Base MinifiedBaselines `json:"b" yaml:"b"`

	// Glyphs ("g") maps each canonical character to its 5-tuple
	// [width, actualBoundingBoxLeft, actualBoundingBoxRight,
	//  actualBoundingBoxAscent, actualBoundingBoxDescent].
	Glyphs map[string][5]float64 `json:"g" yaml:"g"`

	// SpaceOverride ("s") is the optional small-size space advancement
	// override.
	SpaceOverride *float64 `json:"s,omitempty" yaml:"s,omitempty"`

	// Legacy ("c") only ever exists to be detected: a historical
	// character-list field that, if present, makes this blob unreadable.
	// Minify never sets it; Expand fails with ErrLegacyFormat if it is set.
	Legacy json.RawMessage `json:"c,omitempty" yaml:"c,omitempty"`
}

const kerningWildcardKey = "*any*"

func runeKey(r rune) string {
	if r == kerningWildcard {
		return kerningWildcardKey
	}
	return string(r)
}

func keyRune(key string) (rune, error) {
	if key == kerningWildcardKey {
		return kerningWildcard, nil
	}
	r := []rune(key)
	if len(r) != 1 {
		return 0, fmt.Errorf("crispfont: invalid character key %q", key)
	}
	return r[0], nil
}

// Minify converts m into its compact on-disk shape. It requires m's
// characterMetrics to cover exactly the canonical 204-character set in
// canonical order; otherwise it returns a *CharacterSetError wrapping
// ErrInvalidCharacterSet (spec §4.1, testable property 6).
func Minify(m FontMetrics) (MinifiedMetrics, error) {
	chars := m.Characters()
	if err := ValidateCharacterSet(chars); err != nil {
		return MinifiedMetrics{}, err
	}

	glyphs := make(map[string][5]float64, len(chars))
	for _, r := range chars {
		cm, _ := m.CharacterMetrics(r)
		glyphs[runeKey(r)] = [5]float64{
			cm.Width,
			cm.ActualBoundingBoxLeft,
			cm.ActualBoundingBoxRight,
			cm.ActualBoundingBoxAscent,
			cm.ActualBoundingBoxDescent,
		}
	}

	kerning := make(map[string]map[string]float64, len(m.kerningTable))
	for left, row := range m.kerningTable {
		outRow := make(map[string]float64, len(row))
		for right, adj := range row {
			outRow[runeKey(right)] = adj
		}
		kerning[runeKey(left)] = outRow
	}

	x := MinifiedMetrics{
		Kerning: kerning,
		Base: MinifiedBaselines{
			FontBoundingBoxAscent:  m.baselines.FontBoundingBoxAscent,
			FontBoundingBoxDescent: m.baselines.FontBoundingBoxDescent,
			HangingBaseline:        m.baselines.HangingBaseline,
			AlphabeticBaseline:     m.baselines.AlphabeticBaseline,
			IdeographicBaseline:    m.baselines.IdeographicBaseline,
		},
		Glyphs: glyphs,
	}
	if v, ok := m.SpaceAdvancementOverride(); ok {
		x.SpaceOverride = &v
	}
	return x, nil
}

// Expand reconstructs a FontMetrics from its minified shape. Every
// character's fontBoundingBoxAscent/Descent and the three baselines are
// populated from x.Base; per-glyph fields come from x.Glyphs (spec §4.1).
// Expand fails with ErrLegacyFormat if x carries a historical "c" field.
func Expand(x MinifiedMetrics) (FontMetrics, error) {
	if len(x.Legacy) > 0 {
		return FontMetrics{}, ErrLegacyFormat
	}

	b := NewFontMetricsBuilder().SetBaselines(Baselines{
		FontBoundingBoxAscent:  x.Base.FontBoundingBoxAscent,
		FontBoundingBoxDescent: x.Base.FontBoundingBoxDescent,
		HangingBaseline:        x.Base.HangingBaseline,
		AlphabeticBaseline:     x.Base.AlphabeticBaseline,
		IdeographicBaseline:    x.Base.IdeographicBaseline,
	})

	for key, tuple := range x.Glyphs {
		r, err := keyRune(key)
		if err != nil {
			return FontMetrics{}, err
		}
		b.SetCharacterMetrics(r, CharacterMetrics{
			Width:                    tuple[0],
			ActualBoundingBoxLeft:    tuple[1],
			ActualBoundingBoxRight:   tuple[2],
			ActualBoundingBoxAscent:  tuple[3],
			ActualBoundingBoxDescent: tuple[4],
		})
	}

	for leftKey, row := range x.Kerning {
		left, err := keyRune(leftKey)
		if err != nil {
			return FontMetrics{}, err
		}
		for rightKey, adj := range row {
			right, err := keyRune(rightKey)
			if err != nil {
				return FontMetrics{}, err
			}
			b.SetKerning(left, right, adj)
		}
	}

	if x.SpaceOverride != nil {
		b.SetSpaceAdvancementOverride(*x.SpaceOverride)
	}

	return b.Build(), nil
}

// MinifyWithVerification runs Expand(Minify(m)) and compares the five
// essential per-character fields against the original, per character in
// the canonical set. Any mismatch returns a *RoundtripMismatchError
// wrapping ErrRoundtripFailure (spec §4.1).
func MinifyWithVerification(m FontMetrics) (MinifiedMetrics, error) {
	x, err := Minify(m)
	if err != nil {
		return MinifiedMetrics{}, err
	}
	roundtripped, err := Expand(x)
	if err != nil {
		return MinifiedMetrics{}, fmt.Errorf("crispfont: roundtrip expand failed: %w", err)
	}

	for _, r := range CharacterSet {
		original, ok := m.CharacterMetrics(r)
		if !ok {
			continue
		}
		got, ok := roundtripped.CharacterMetrics(r)
		if !ok {
			return MinifiedMetrics{}, &RoundtripMismatchError{Char: r, Field: "presence"}
		}
		if field, mismatched := firstMismatch(original, got); mismatched {
			return MinifiedMetrics{}, &RoundtripMismatchError{Char: r, Field: field}
		}
	}
	return x, nil
}

// firstMismatch reports the first of the five essential fields (spec
// §4.1) that differs between a and b.
func firstMismatch(a, b CharacterMetrics) (field string, mismatched bool) {
	switch {
	case a.Width != b.Width:
		return "width", true
	case a.ActualBoundingBoxLeft != b.ActualBoundingBoxLeft:
		return "actualBoundingBoxLeft", true
	case a.ActualBoundingBoxRight != b.ActualBoundingBoxRight:
		return "actualBoundingBoxRight", true
	case a.ActualBoundingBoxAscent != b.ActualBoundingBoxAscent:
		return "actualBoundingBoxAscent", true
	case a.ActualBoundingBoxDescent != b.ActualBoundingBoxDescent:
		return "actualBoundingBoxDescent", true
	default:
		return "", false
	}
}

// FontMetricsEqual reports whether a and b are equal over every field
// consumed by measurement and draw: characterMetrics, kerningTable,
// baselines, and the space override (spec §8, testable property 1). It is
// used by tests, not by the production Minify/Expand path.
func FontMetricsEqual(a, b FontMetrics) bool {
	if a.baselines != b.baselines {
		return false
	}
	av, aok := a.SpaceAdvancementOverride()
	bv, bok := b.SpaceAdvancementOverride()
	if aok != bok || (aok && av != bv) {
		return false
	}
	if len(a.perChar) != len(b.perChar) {
		return false
	}
	for r, cm := range a.perChar {
		other, ok := b.perChar[r]
		if !ok || cm != other {
			return false
		}
	}
	if len(a.kerningTable) != len(b.kerningTable) {
		return false
	}
	for left, row := range a.kerningTable {
		otherRow, ok := b.kerningTable[left]
		if !ok || len(row) != len(otherRow) {
			return false
		}
		for right, adj := range row {
			if otherRow[right] != adj {
				return false
			}
		}
	}
	return true
}
