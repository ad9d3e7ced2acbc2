package crispfont

import (
	"image"
	"image/draw"
	"testing"
)

func twoCharMetrics() FontMetrics {
	b := NewFontMetricsBuilder().SetBaselines(Baselines{FontBoundingBoxAscent: 12, FontBoundingBoxDescent: 4})
	b.SetCharacterMetrics('A', CharacterMetrics{Width: 8, ActualBoundingBoxLeft: 1, ActualBoundingBoxRight: 6, ActualBoundingBoxAscent: 10, ActualBoundingBoxDescent: 2})
	b.SetCharacterMetrics('B', CharacterMetrics{Width: 9, ActualBoundingBoxLeft: 1, ActualBoundingBoxRight: 7, ActualBoundingBoxAscent: 10, ActualBoundingBoxDescent: 3})
	return b.Build()
}

func TestMeasureTextEmpty(t *testing.T) {
	e := NewTextEngine()
	m := e.MeasureText(nil, FontIdentity{}, twoCharMetrics(), nil, TextProperties{})
	if m != (TextMetrics{}) {
		t.Errorf("MeasureText(nil) = %+v, want the zero value", m)
	}
}

func TestMeasureTextNoKerning(t *testing.T) {
	e := NewTextEngine()
	id := FontIdentity{Size: 16}
	m := e.MeasureText([]rune("AB"), id, twoCharMetrics(), nil, TextProperties{})
	if m.Width != 17 {
		t.Errorf("Width = %v, want 17", m.Width)
	}
	if m.ActualBoundingBoxLeft != 1 {
		t.Errorf("ActualBoundingBoxLeft = %v, want 1", m.ActualBoundingBoxLeft)
	}
	if m.ActualBoundingBoxRight != 15 {
		t.Errorf("ActualBoundingBoxRight = %v, want 15", m.ActualBoundingBoxRight)
	}
	if m.Height != 16 {
		t.Errorf("Height = %v, want 16", m.Height)
	}
}

func TestMeasureTextWithProportionalKerning(t *testing.T) {
	e := NewTextEngine()
	metrics := twoCharMetrics()
	b := NewFontMetricsBuilder().SetBaselines(metrics.Baselines())
	for _, r := range metrics.Characters() {
		cm, _ := metrics.CharacterMetrics(r)
		b.SetCharacterMetrics(r, cm)
	}
	b.SetKerning('A', 'B', 0.1)
	withKerning := b.Build()

	id := FontIdentity{Size: 16}
	m := e.MeasureText([]rune("AB"), id, withKerning, nil, TextProperties{})
	// advance('A') = round(8 - 8*0.1) = round(7.2) = 7; advance('B') = 9.
	if m.Width != 16 {
		t.Errorf("Width = %v, want 16", m.Width)
	}
}

func TestCalculateAdvancementKerningCutoff(t *testing.T) {
	e := NewTextEngine()
	metrics := twoCharMetrics()
	b := NewFontMetricsBuilder().SetBaselines(metrics.Baselines())
	for _, r := range metrics.Characters() {
		cm, _ := metrics.CharacterMetrics(r)
		b.SetCharacterMetrics(r, cm)
	}
	b.SetKerning('A', 'B', 0.1)
	withKerning := b.Build()
	text := []rune("AB")

	props := TextProperties{KerningSizeCutoff: 20}
	below := e.calculateAdvancement(0, text, 16, withKerning, nil, props)
	if below != 8 {
		t.Errorf("below cutoff with no discretisation table: advance = %d, want 8 (kerning ignored)", below)
	}

	above := e.calculateAdvancement(0, text, 30, withKerning, nil, props)
	if above != 7 {
		t.Errorf("above cutoff: advance = %d, want 7 (proportional kerning applied)", above)
	}
}

func TestCalculateAdvancementKerningDiscretization(t *testing.T) {
	e := NewTextEngine()
	metrics := twoCharMetrics()
	b := NewFontMetricsBuilder().SetBaselines(metrics.Baselines())
	for _, r := range metrics.Characters() {
		cm, _ := metrics.CharacterMetrics(r)
		b.SetCharacterMetrics(r, cm)
	}
	b.SetKerning('A', 'B', 0.1)
	withKerning := b.Build()
	text := []rune("AB")

	props := TextProperties{
		KerningSizeCutoff:     20,
		KerningDiscretization: []KerningBracket{{Min: 0, Max: 1, Adjustment: 2}},
	}
	got := e.calculateAdvancement(0, text, 16, withKerning, nil, props)
	if got != 6 {
		t.Errorf("discretised advance = %d, want 6 (8 - bracket adjustment 2)", got)
	}
}

func TestCalculateAdvancementSpaceOverride(t *testing.T) {
	e := NewTextEngine()
	b := NewFontMetricsBuilder().SetBaselines(Baselines{FontBoundingBoxAscent: 10, FontBoundingBoxDescent: 2})
	b.SetCharacterMetrics(' ', CharacterMetrics{Width: 4})
	b.SetSpaceAdvancementOverride(7)
	m := b.Build()

	got := e.calculateAdvancement(0, []rune(" "), 16, m, nil, TextProperties{})
	if got != 7 {
		t.Errorf("advance = %d, want 7 (space override)", got)
	}
}

func TestCalculateAdvancementNonSpaceOverride(t *testing.T) {
	e := NewTextEngine()
	b := NewFontMetricsBuilder().SetBaselines(Baselines{FontBoundingBoxAscent: 10, FontBoundingBoxDescent: 2})
	b.SetCharacterMetrics('A', CharacterMetrics{Width: 8, ActualBoundingBoxLeft: 1, ActualBoundingBoxRight: 6})
	m := b.Build()

	posBuilder := NewAtlasPositioningBuilder()
	_ = posBuilder.Set('A', GlyphPlacement{TightWidth: 5, TightHeight: 10})
	atlas := &AtlasData{Image: NewAtlasImage(10, 10), Positioning: posBuilder.Build()}

	props := TextProperties{AdvancementOverrides: map[rune]float64{'A': 1.5}}
	got := e.calculateAdvancement(0, []rune("A"), 16, m, atlas, props)
	if got != 8 {
		t.Errorf("advance = %d, want 8 (tightWidth+1 + override = 5+1+1.5 = 7.5, rounded)", got)
	}
}

func TestDrawTextFromAtlasNoMetrics(t *testing.T) {
	e := NewTextEngine()
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	result := e.DrawTextFromAtlas(dst, []rune("A"), 0, 0, FontIdentity{}, nil, nil, TextProperties{})
	if result.Status != StatusNoMetrics || !result.PlaceholdersUsed || !result.Rendered {
		t.Errorf("result = %+v, want Status=NoMetrics, PlaceholdersUsed=true, Rendered=true", result)
	}
}

func TestDrawTextFromAtlasNoAtlasUsesPlaceholders(t *testing.T) {
	e := NewTextEngine()
	m := twoCharMetrics()
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	result := e.DrawTextFromAtlas(dst, []rune("A"), 0, 0, FontIdentity{Size: 16}, &m, nil, TextProperties{})
	if result.Status != StatusNoAtlas || !result.PlaceholdersUsed {
		t.Errorf("result = %+v, want Status=NoAtlas, PlaceholdersUsed=true", result)
	}
}

func TestDrawTextFromAtlasBlitsGlyph(t *testing.T) {
	e := NewTextEngine()
	m := twoCharMetrics()

	posBuilder := NewAtlasPositioningBuilder()
	_ = posBuilder.Set('A', GlyphPlacement{TightWidth: 4, TightHeight: 4, XInAtlas: 0, YInAtlas: 0})
	img := NewAtlasImage(4, 4)
	draw.Draw(img.Pix(), img.Pix().Bounds(), image.NewUniform(image.White), image.Point{}, draw.Src)
	atlas := &AtlasData{Image: img, Positioning: posBuilder.Build()}

	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	result := e.DrawTextFromAtlas(dst, []rune("A"), 2, 2, FontIdentity{Size: 16}, &m, atlas, TextProperties{})
	if result.Status != StatusOK || result.PlaceholdersUsed {
		t.Errorf("result = %+v, want Status=OK, PlaceholdersUsed=false", result)
	}
	_, _, _, a := dst.At(2, 2).RGBA()
	if a == 0 {
		t.Error("expected the glyph to be blitted at the draw origin")
	}
}
