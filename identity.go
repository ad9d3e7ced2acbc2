package crispfont

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is a font style axis value.
type Style string

// Canonical style values (spec §3).
const (
	StyleNormal  Style = "normal"
	StyleItalic  Style = "italic"
	StyleOblique Style = "oblique"
)

func (s Style) valid() bool {
	switch s {
	case StyleNormal, StyleItalic, StyleOblique:
		return true
	default:
		return false
	}
}

// Weight is a font weight axis value: "normal", "bold", or a numeric
// weight string in the CSS range 100..900 (spec §3).
type Weight string

// Canonical named weights.
const (
	WeightNormal Weight = "normal"
	WeightBold   Weight = "bold"
)

func (w Weight) valid() bool {
	switch w {
	case WeightNormal, WeightBold:
		return true
	}
	n, err := strconv.Atoi(string(w))
	if err != nil {
		return false
	}
	return n >= 100 && n <= 900
}

// FontIdentity is the immutable key that identifies a font for metrics and
// atlas lookup: (pixelDensity, family, style, weight, size). It is a value
// type — safe to use as a map key and to compare with ==.
type FontIdentity struct {
	PixelDensity float64
	Family       string
	Style        Style
	Weight       Weight
	Size         float64
}

// Validate reports whether id's fields satisfy the domain constraints from
// spec §3 (style/weight enumerations, size floor).
func (id FontIdentity) Validate() error {
	if !id.Style.valid() {
		return fmt.Errorf("crispfont: invalid style %q", id.Style)
	}
	if !id.Weight.valid() {
		return fmt.Errorf("crispfont: invalid weight %q", id.Weight)
	}
	if id.Size < 9 {
		return fmt.Errorf("crispfont: size %g is below the minimum of 9", id.Size)
	}
	if id.Family == "" {
		return fmt.Errorf("crispfont: family must not be empty")
	}
	return nil
}

// String renders the canonical, lossless id-string form (spec §6):
//
//	density-<intPart>-<fracPart>-<family>-style-<style>-weight-<weight>-size-<intPart>-<fracPart>
func (id FontIdentity) String() string {
	densityInt, densityFrac := splitDecimal(id.PixelDensity)
	sizeInt, sizeFrac := splitDecimal(id.Size)
	return fmt.Sprintf("density-%s-%s-%s-style-%s-weight-%s-size-%s-%s",
		densityInt, densityFrac, id.Family, id.Style, id.Weight, sizeInt, sizeFrac)
}

// splitDecimal renders v as the minimal decimal int/frac parts the
// id-string codec expects: an integer value's fracPart is the literal
// string "0"; otherwise fracPart is the digits after the decimal point.
func splitDecimal(v float64) (intPart, fracPart string) {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s, "0"
	}
	return s[:dot], s[dot+1:]
}

// joinDecimal is the inverse of splitDecimal.
func joinDecimal(intPart, fracPart string) (float64, error) {
	if fracPart == "0" {
		return strconv.ParseFloat(intPart, 64)
	}
	return strconv.ParseFloat(intPart+"."+fracPart, 64)
}

// ParseFontIdentity parses the canonical id-string form produced by
// FontIdentity.String. Family may itself contain dashes; the split is
// positional, anchored on the literal keywords "-style-", "-weight-" and
// "-size-" (spec §6).
func ParseFontIdentity(idString string) (FontIdentity, error) {
	const densityPrefix = "density-"
	if !strings.HasPrefix(idString, densityPrefix) {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string missing %q prefix", densityPrefix)
	}
	rest := idString[len(densityPrefix):]

	densityIntPart, rest, err := cutField(rest)
	if err != nil {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string: pixel density integer part: %w", err)
	}
	densityFracPart, rest, err := cutField(rest)
	if err != nil {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string: pixel density fraction part: %w", err)
	}

	const styleMarker = "-style-"
	styleIdx := strings.Index(rest, styleMarker)
	if styleIdx < 0 {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string missing %q marker", styleMarker)
	}
	family := rest[:styleIdx]
	rest = rest[styleIdx+len(styleMarker):]

	const weightMarker = "-weight-"
	weightIdx := strings.Index(rest, weightMarker)
	if weightIdx < 0 {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string missing %q marker", weightMarker)
	}
	style := rest[:weightIdx]
	rest = rest[weightIdx+len(weightMarker):]

	const sizeMarker = "-size-"
	sizeIdx := strings.Index(rest, sizeMarker)
	if sizeIdx < 0 {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string missing %q marker", sizeMarker)
	}
	weight := rest[:sizeIdx]
	rest = rest[sizeIdx+len(sizeMarker):]

	sizeIntPart, sizeFracPart, err := cutLastField(rest)
	if err != nil {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string: size parts: %w", err)
	}

	density, err := joinDecimal(densityIntPart, densityFracPart)
	if err != nil {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string: invalid pixel density: %w", err)
	}
	size, err := joinDecimal(sizeIntPart, sizeFracPart)
	if err != nil {
		return FontIdentity{}, fmt.Errorf("crispfont: id-string: invalid size: %w", err)
	}

	id := FontIdentity{
		PixelDensity: density,
		Family:       family,
		Style:        Style(style),
		Weight:       Weight(weight),
		Size:         size,
	}
	if err := id.Validate(); err != nil {
		return FontIdentity{}, err
	}
	return id, nil
}

// cutField takes everything up to the next '-' as a field, returning the
// remainder. Used for the two leading numeric fields after "density-".
func cutField(s string) (field, rest string, err error) {
	idx := strings.IndexByte(s, '-')
	if idx < 0 {
		return "", "", fmt.Errorf("unexpected end of id-string")
	}
	return s[:idx], s[idx+1:], nil
}

// cutLastField splits the trailing "<int>-<frac>" pair, where fracPart is
// everything after the final dash (never contains a further dash itself).
func cutLastField(s string) (intPart, fracPart string, err error) {
	idx := strings.LastIndexByte(s, '-')
	if idx < 0 {
		return "", "", fmt.Errorf("unexpected end of id-string")
	}
	return s[:idx], s[idx+1:], nil
}
