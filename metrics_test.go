package crispfont

import "testing"

func buildSampleMetrics() FontMetrics {
	b := NewFontMetricsBuilder().SetBaselines(Baselines{
		FontBoundingBoxAscent:  12,
		FontBoundingBoxDescent: 4,
		HangingBaseline:        9.6,
		AlphabeticBaseline:     0,
		IdeographicBaseline:    -4,
	})
	for _, c := range CharacterSet {
		b.SetCharacterMetrics(c, CharacterMetrics{
			Width:                    8,
			ActualBoundingBoxLeft:    1,
			ActualBoundingBoxRight:   6,
			ActualBoundingBoxAscent:  10,
			ActualBoundingBoxDescent: 2,
		})
	}
	b.SetKerning('A', 'V', -0.1)
	b.SetKerning('A', KerningWildcard, -0.02)
	return b.Build()
}

func TestFontMetricsCharacterMetrics(t *testing.T) {
	m := buildSampleMetrics()
	cm, ok := m.CharacterMetrics('A')
	if !ok {
		t.Fatal("expected metrics for 'A'")
	}
	if cm.Width != 8 {
		t.Errorf("Width = %v, want 8", cm.Width)
	}
	if _, ok := m.CharacterMetrics(rune(0x1F600)); ok {
		t.Error("unexpected metrics for an uncharted character")
	}
}

func TestFontMetricsKerningExactThenWildcard(t *testing.T) {
	m := buildSampleMetrics()

	adj, ok := m.Kerning('A', 'V')
	if !ok || adj != -0.1 {
		t.Errorf("Kerning('A','V') = (%v, %v), want (-0.1, true)", adj, ok)
	}

	adj, ok = m.Kerning('A', 'z')
	if !ok || adj != -0.02 {
		t.Errorf("Kerning('A','z') wildcard fallback = (%v, %v), want (-0.02, true)", adj, ok)
	}

	_, ok = m.Kerning('z', 'A')
	if ok {
		t.Error("Kerning('z','A') should miss: no row for 'z'")
	}
}

func TestFontMetricsCharactersCanonicalOrder(t *testing.T) {
	m := buildSampleMetrics()
	chars := m.Characters()
	if !InCanonicalOrder(chars) {
		t.Error("Characters() should return the canonical set in canonical order")
	}
}

func TestFontMetricsSpaceAdvancementOverride(t *testing.T) {
	b := NewFontMetricsBuilder()
	if _, ok := b.Build().SpaceAdvancementOverride(); ok {
		t.Error("unset override should report ok=false")
	}
	b.SetSpaceAdvancementOverride(4)
	v, ok := b.Build().SpaceAdvancementOverride()
	if !ok || v != 4 {
		t.Errorf("SpaceAdvancementOverride() = (%v, %v), want (4, true)", v, ok)
	}
}

func TestFontMetricsEqual(t *testing.T) {
	a := buildSampleMetrics()
	b := buildSampleMetrics()
	if !FontMetricsEqual(a, b) {
		t.Error("two independently built identical metrics should be equal")
	}

	builder := NewFontMetricsBuilder().SetBaselines(a.Baselines())
	for _, c := range CharacterSet {
		cm, _ := a.CharacterMetrics(c)
		builder.SetCharacterMetrics(c, cm)
	}
	builder.SetCharacterMetrics('A', CharacterMetrics{Width: 999})
	mutated := builder.Build()
	if FontMetricsEqual(a, mutated) {
		t.Error("metrics differing on a single glyph should not be equal")
	}
}
