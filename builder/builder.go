package builder

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/crispfont"
	"github.com/gogpu/crispfont/internal/inkscan"
	"github.com/gogpu/crispfont/rasterhost"
	"github.com/gogpu/crispfont/rectpack"
)

// CapturedGlyph is a single character's build-time record: its cell size
// and its tight ink bounds within the cell (spec §4.7 step 3). The cropped
// glyph pixels are not kept on the record.
type CapturedGlyph struct {
	Char        rune
	CellWidth   int
	CellHeight  int
	TightBounds inkscan.Bounds
	HasInk      bool
}

// Result is everything Build produces: the font's metrics, the wide atlas
// image ready for AtlasReconstructor, per-character capture records for
// diagnostics, and the TextProperties side-channel carrying small-size
// advancement overrides and kerning discretisation brackets that
// corrections installed (spec §4.7; these are not part of the minified
// metrics wire contract in spec §4.1, so they travel separately).
type Result struct {
	Metrics    crispfont.FontMetrics
	WideAtlas  *crispfont.AtlasImage
	Glyphs     []CapturedGlyph
	Properties crispfont.TextProperties
}

// Builder drives a rasterhost.HostRasterizer across the canonical
// character set to produce a font's metrics and wide atlas (spec §4.7).
type Builder struct {
	Rasterizer  rasterhost.HostRasterizer
	Corrections CorrectionsSpec
}

// New returns a Builder.
func New(rasterizer rasterhost.HostRasterizer, corrections CorrectionsSpec) *Builder {
	return &Builder{Rasterizer: rasterizer, Corrections: corrections}
}

// Build captures every character in crispfont.CharacterSet for id,
// applies matching corrections, and packs the wide atlas.
func (b *Builder) Build(id crispfont.FontIdentity) (Result, error) {
	if err := id.Validate(); err != nil {
		return Result{}, err
	}
	density := id.PixelDensity
	if density <= 0 {
		density = 1
	}

	baselines, err := b.Rasterizer.Baselines(id.Size)
	if err != nil {
		return Result{}, fmt.Errorf("builder: font baselines: %w", err)
	}
	cellH := int(math.Round((baselines.FontBoundingBoxAscent + baselines.FontBoundingBoxDescent) * density))
	if cellH <= 0 {
		return Result{}, fmt.Errorf("builder: computed cell height is non-positive")
	}

	corrections := b.Corrections.For(id.Family, id.Style, id.Weight)
	props := crispfont.TextProperties{AdvancementOverrides: make(map[rune]float64)}

	metricsBuilder := crispfont.NewFontMetricsBuilder().SetBaselines(baselines)

	type captured struct {
		char   rune
		cm     crispfont.CharacterMetrics
		cellW  int
		canvas image.Image
	}
	all := make([]captured, 0, len(crispfont.CharacterSet))

	for _, c := range crispfont.CharacterSet {
		cm, err := b.Rasterizer.CharacterMetrics(c, id.Size)
		if err != nil {
			return Result{}, fmt.Errorf("builder: metrics for %q: %w", string(c), err)
		}

		for _, corr := range corrections {
			if !corr.appliesTo(id.Size, c) {
				continue
			}
			switch corr.Kind {
			case CorrectionPixel:
				cm.Width += corr.Value
			case CorrectionProportional:
				cm.Width += cm.Width * corr.Value
			case CorrectionAdvancementOverride:
				if c == ' ' {
					metricsBuilder.SetSpaceAdvancementOverride(corr.Value)
				} else {
					props.AdvancementOverrides[c] = corr.Value
				}
			case CorrectionKerningBracket:
				props.KerningDiscretization = append(props.KerningDiscretization, crispfont.KerningBracket{
					Min:        corr.BracketMin,
					Max:        corr.BracketMax,
					Adjustment: corr.Value,
				})
			}
		}

		cellW := int(math.Round((cm.ActualBoundingBoxLeft + cm.ActualBoundingBoxRight) * density))
		canvas, err := b.Rasterizer.RasterizeCell(c, id.Size, density, cellW, cellH)
		if err != nil {
			return Result{}, fmt.Errorf("builder: rasterize %q: %w", string(c), err)
		}

		metricsBuilder.SetCharacterMetrics(c, cm)
		all = append(all, captured{char: c, cm: cm, cellW: cellW, canvas: canvas})
	}

	widths := make([]int, len(all))
	for i, g := range all {
		widths[i] = g.cellW
	}
	grid := rectpack.NewVariableGrid(widths, cellH)

	wide := image.NewRGBA(image.Rect(0, 0, grid.TotalWidth(), grid.TotalHeight()))
	glyphs := make([]CapturedGlyph, len(all))
	for i, g := range all {
		x, y := grid.CellOrigin(i)
		drawFullCell(wide, x, y, g.canvas, g.cellW, cellH)

		bounds, hasInk := inkscan.Scan(wide, x, y, g.cellW, cellH)
		glyphs[i] = CapturedGlyph{
			Char:        g.char,
			CellWidth:   g.cellW,
			CellHeight:  cellH,
			TightBounds: bounds,
			HasInk:      hasInk,
		}
	}

	return Result{
		Metrics:    metricsBuilder.Build(),
		WideAtlas:  crispfont.WrapAtlasImage(wide),
		Glyphs:     glyphs,
		Properties: props,
	}, nil
}

// drawFullCell copies src (the rasterized glyph cell) into dst at
// (originX, originY), sized (w, h).
func drawFullCell(dst *image.RGBA, originX, originY int, src image.Image, w, h int) {
	b := src.Bounds()
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			sx := b.Min.X + dx
			sy := b.Min.Y + dy
			if sx >= b.Max.X || sy >= b.Max.Y {
				continue
			}
			dst.Set(originX+dx, originY+dy, src.At(sx, sy))
		}
	}
}
