package crispfont

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMinifyExpandRoundtrip(t *testing.T) {
	original := buildSampleMetrics()

	minified, err := Minify(original)
	if err != nil {
		t.Fatalf("Minify: %v", err)
	}
	expanded, err := Expand(minified)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !FontMetricsEqual(original, expanded) {
		t.Error("expand(minify(m)) should equal m")
	}
}

func TestMinifyRejectsIncompleteCharacterSet(t *testing.T) {
	b := NewFontMetricsBuilder().SetBaselines(Baselines{FontBoundingBoxAscent: 10, FontBoundingBoxDescent: 2})
	b.SetCharacterMetrics('A', CharacterMetrics{Width: 8})
	_, err := Minify(b.Build())
	if err == nil {
		t.Fatal("expected an error minifying metrics with an incomplete character set")
	}
	var cse *CharacterSetError
	if !errors.As(err, &cse) {
		t.Fatalf("error is not a *CharacterSetError: %v", err)
	}
	if !errors.Is(err, ErrInvalidCharacterSet) {
		t.Error("error should wrap ErrInvalidCharacterSet")
	}
}

func TestMinifyKerningWildcardKey(t *testing.T) {
	m := buildSampleMetrics()
	minified, err := Minify(m)
	if err != nil {
		t.Fatalf("Minify: %v", err)
	}
	row, ok := minified.Kerning["A"]
	if !ok {
		t.Fatal("expected a kerning row for 'A'")
	}
	if _, ok := row[kerningWildcardKey]; !ok {
		t.Errorf("expected wildcard key %q in kerning row, got %v", kerningWildcardKey, row)
	}
}

func TestMinifiedMetricsJSONFieldNames(t *testing.T) {
	m := buildSampleMetrics()
	minified, err := Minify(m)
	if err != nil {
		t.Fatalf("Minify: %v", err)
	}
	data, err := json.Marshal(minified)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"k", "b", "g"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("minified JSON missing required field %q", key)
		}
	}
	if _, ok := raw["c"]; ok {
		t.Error("Minify must never set the legacy \"c\" field")
	}
}

func TestExpandRejectsLegacyFormat(t *testing.T) {
	legacy := MinifiedMetrics{
		Kerning: map[string]map[string]float64{},
		Glyphs:  map[string][5]float64{},
		Legacy:  json.RawMessage(`["a","b","c"]`),
	}
	_, err := Expand(legacy)
	if !errors.Is(err, ErrLegacyFormat) {
		t.Fatalf("Expand should fail with ErrLegacyFormat, got %v", err)
	}
}

func TestMinifyWithVerificationSucceeds(t *testing.T) {
	m := buildSampleMetrics()
	if _, err := MinifyWithVerification(m); err != nil {
		t.Errorf("MinifyWithVerification: %v", err)
	}
}

func TestTamperedGlyphBreaksRoundtripEquality(t *testing.T) {
	m := buildSampleMetrics()
	minified, err := Minify(m)
	if err != nil {
		t.Fatalf("Minify: %v", err)
	}
	tuple := minified.Glyphs["A"]
	tuple[0] = 12345
	minified.Glyphs["A"] = tuple

	expanded, err := Expand(minified)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if FontMetricsEqual(m, expanded) {
		t.Fatal("tampering with a glyph's width should break equality")
	}
}

func TestMinifyWithVerificationErrorType(t *testing.T) {
	// MinifyWithVerification compares the freshly produced minified blob
	// against its own expansion, so a direct call can't itself observe a
	// mismatch; this only checks that a *RoundtripMismatchError unwraps to
	// ErrRoundtripFailure.
	var err error = &RoundtripMismatchError{Char: 'A', Field: "width"}
	if !errors.Is(err, ErrRoundtripFailure) {
		t.Error("*RoundtripMismatchError should unwrap to ErrRoundtripFailure")
	}
}

func TestSpaceOverrideRoundtrips(t *testing.T) {
	b := NewFontMetricsBuilder().SetBaselines(Baselines{FontBoundingBoxAscent: 10, FontBoundingBoxDescent: 2})
	for _, c := range CharacterSet {
		b.SetCharacterMetrics(c, CharacterMetrics{Width: 5})
	}
	b.SetSpaceAdvancementOverride(3.5)
	m := b.Build()

	minified, err := Minify(m)
	if err != nil {
		t.Fatalf("Minify: %v", err)
	}
	if minified.SpaceOverride == nil || *minified.SpaceOverride != 3.5 {
		t.Fatalf("SpaceOverride = %v, want 3.5", minified.SpaceOverride)
	}
	expanded, err := Expand(minified)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	v, ok := expanded.SpaceAdvancementOverride()
	if !ok || v != 3.5 {
		t.Errorf("expanded SpaceAdvancementOverride() = (%v, %v), want (3.5, true)", v, ok)
	}
}
