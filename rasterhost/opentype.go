package rasterhost

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/crispfont"
)

// OpenTypeRasterizer implements HostRasterizer over a parsed OpenType/TrueType
// font, using golang.org/x/image/font/opentype for shaping and
// golang.org/x/image/font.Drawer for rasterization. With no font file
// supplied it falls back to the embedded gofont/goregular face, so the
// builder runs with zero external assets.
type OpenTypeRasterizer struct {
	font *opentype.Font
}

// NewOpenTypeRasterizer parses data as an OpenType/TrueType font.
func NewOpenTypeRasterizer(data []byte) (*OpenTypeRasterizer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rasterhost: parse font: %w", err)
	}
	return &OpenTypeRasterizer{font: f}, nil
}

// NewDefaultRasterizer returns a rasterizer over the embedded Go Regular
// face, for callers with no font file of their own.
func NewDefaultRasterizer() *OpenTypeRasterizer {
	r, err := NewOpenTypeRasterizer(goregular.TTF)
	if err != nil {
		// goregular.TTF is a fixed, known-good asset; a parse failure here
		// means the embedded font itself is corrupt.
		panic(fmt.Sprintf("rasterhost: embedded goregular font failed to parse: %v", err))
	}
	return r
}

func (r *OpenTypeRasterizer) face(sizePx float64) (font.Face, error) {
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     96,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("rasterhost: create face at size %g: %w", sizePx, err)
	}
	return f, nil
}

// CharacterMetrics implements HostRasterizer.
func (r *OpenTypeRasterizer) CharacterMetrics(c rune, sizePx float64) (crispfont.CharacterMetrics, error) {
	f, err := r.face(sizePx)
	if err != nil {
		return crispfont.CharacterMetrics{}, err
	}
	defer func() { _ = f.Close() }()

	bounds, advance, ok := f.GlyphBounds(c)
	if !ok {
		return crispfont.CharacterMetrics{Width: fixedToFloat(advance)}, nil
	}

	return crispfont.CharacterMetrics{
		Width:                    fixedToFloat(advance),
		ActualBoundingBoxLeft:    -fixedToFloat(bounds.Min.X),
		ActualBoundingBoxRight:   fixedToFloat(bounds.Max.X),
		ActualBoundingBoxAscent:  -fixedToFloat(bounds.Min.Y),
		ActualBoundingBoxDescent: fixedToFloat(bounds.Max.Y),
	}, nil
}

// Baselines implements HostRasterizer. golang.org/x/image/font only
// exposes Ascent/Descent directly; the hanging and ideographic baselines
// are approximated from them since this corpus carries no CJK/vertical
// text metrics table to source exact values from.
func (r *OpenTypeRasterizer) Baselines(sizePx float64) (crispfont.Baselines, error) {
	f, err := r.face(sizePx)
	if err != nil {
		return crispfont.Baselines{}, err
	}
	defer func() { _ = f.Close() }()

	m := f.Metrics()
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)

	return crispfont.Baselines{
		FontBoundingBoxAscent:  ascent,
		FontBoundingBoxDescent: descent,
		HangingBaseline:        ascent * 0.8,
		AlphabeticBaseline:     0,
		IdeographicBaseline:    -descent,
	}, nil
}

// RasterizeCell implements HostRasterizer. The glyph is drawn so that its
// ink fills the cell whose size the builder and AtlasReconstructor compute
// (cellWidth = round((abl+abr)*density), cellHeight =
// round((ascent+descent)*density)): the pen origin sits at
// (round(abl*density), round(ascent*density)) from the cell's top-left.
// Those cell sizes are rounded after scaling by density, not before, so
// for a non-integer density they can differ from round(abl+abr)*density.
func (r *OpenTypeRasterizer) RasterizeCell(c rune, sizePx, pixelDensity float64, cellWidth, cellHeight int) (image.Image, error) {
	f, err := r.face(sizePx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if cellWidth <= 0 || cellHeight <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}

	cm, err := r.CharacterMetrics(c, sizePx)
	if err != nil {
		return nil, err
	}
	baselines, err := r.Baselines(sizePx)
	if err != nil {
		return nil, err
	}

	penX := math.Round(cm.ActualBoundingBoxLeft * pixelDensity)
	penY := math.Round(baselines.FontBoundingBoxAscent * pixelDensity)

	dst := image.NewRGBA(image.Rect(0, 0, cellWidth, cellHeight))
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(int(penX), int(penY)),
	}
	drawer.DrawString(string(c))

	return dst, nil
}

func fixedToFloat(x fixed.Int26_6) float64 { return float64(x) / 64 }
