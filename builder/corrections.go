// Package builder drives a rasterhost.HostRasterizer across a font's
// character set, applies per-family corrections, packs the full glyph
// cells into the wide atlas grid that AtlasReconstructor expects, and
// records each glyph's ink bounds (spec §4.7).
package builder

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/crispfont"
)

// CorrectionKind names the semantics of a single correction entry (spec
// §4.7).
type CorrectionKind string

const (
	// CorrectionPixel adds a fixed pixel amount to a character's advance.
	CorrectionPixel CorrectionKind = "pixel"
	// CorrectionProportional scales a character's advance by a fraction.
	CorrectionProportional CorrectionKind = "proportional"
	// CorrectionAdvancementOverride installs a small-size advancement
	// override (spec §4.4 step 1) for a non-space character, or the
	// font-level space override when applied to the space character.
	CorrectionAdvancementOverride CorrectionKind = "advancement_override"
	// CorrectionKerningBracket installs a kerning discretisation bracket
	// (spec §4.4 step 3).
	CorrectionKerningBracket CorrectionKind = "kerning_bracket"
)

// SizeRange gates a correction to a font-size interval, inclusive.
type SizeRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r SizeRange) contains(size float64) bool {
	return size >= r.Min && size <= r.Max
}

// Correction is one row of a corrections table: a size range, a target
// character set, a kind, and the value that kind interprets. For
// CorrectionKerningBracket, BracketMin/BracketMax describe the kerning
// value bracket the Value (adjustment) applies to; for every other kind
// they are unused.
type Correction struct {
	SizeRange  SizeRange      `yaml:"sizeRange"`
	Characters string         `yaml:"characters"`
	Kind       CorrectionKind `yaml:"kind"`
	Value      float64        `yaml:"value"`
	BracketMin float64        `yaml:"bracketMin,omitempty"`
	BracketMax float64        `yaml:"bracketMax,omitempty"`
}

// styleWeightCorrections groups corrections under a single "style-weight"
// key, e.g. "italic-700".
type styleWeightCorrections struct {
	StyleWeight string       `yaml:"styleWeight"`
	Corrections []Correction `yaml:"corrections"`
}

type familyCorrections struct {
	Family       string                    `yaml:"family"`
	StyleWeights []styleWeightCorrections  `yaml:"styleWeights"`
}

// CorrectionsSpec is the parsed corrections document (spec §4.7,
// §6 "Corrections spec file").
type CorrectionsSpec struct {
	Families []familyCorrections `yaml:"families"`
}

// LoadCorrections parses a corrections spec document.
func LoadCorrections(data []byte) (CorrectionsSpec, error) {
	var spec CorrectionsSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return CorrectionsSpec{}, fmt.Errorf("builder: parse corrections spec: %w", err)
	}
	return spec, nil
}

// For returns the corrections registered for family/style/weight, or nil.
func (s CorrectionsSpec) For(family string, style crispfont.Style, weight crispfont.Weight) []Correction {
	key := string(style) + "-" + string(weight)
	for _, f := range s.Families {
		if f.Family != family {
			continue
		}
		for _, sw := range f.StyleWeights {
			if sw.StyleWeight == key {
				return sw.Corrections
			}
		}
	}
	return nil
}

// appliesTo reports whether c applies to size and character r.
func (c Correction) appliesTo(size float64, r rune) bool {
	if !c.SizeRange.contains(size) {
		return false
	}
	for _, cr := range c.Characters {
		if cr == r {
			return true
		}
	}
	return false
}
