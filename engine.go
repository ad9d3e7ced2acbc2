package crispfont

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// KerningBracket is one entry of a kerning discretisation table (spec
// §4.4, §4.7): at small sizes, a proportional kerning value is snapped to
// the Adjustment of whichever bracket contains it, to avoid sub-pixel
// drift.
type KerningBracket struct {
	Min, Max   float64
	Adjustment float64
}

func (b KerningBracket) contains(v float64) bool { return v >= b.Min && v <= b.Max }

// discretize finds the bracket containing v and returns its adjustment.
// If no bracket contains v, the adjustment is zero.
func discretize(v float64, brackets []KerningBracket) float64 {
	for _, b := range brackets {
		if b.contains(v) {
			return b.Adjustment
		}
	}
	return 0
}

// TextProperties parameterises measurement, advancement, and drawing with
// the per-draw knobs that are not baked into FontMetrics at build time
// (spec §4.4's "fontProps"): the size cutoff below which kerning is either
// suppressed or discretised, the discretisation table itself, and the
// small-size per-character advancement overrides produced by the
// builder's corrections (spec §4.7).
type TextProperties struct {
	// KerningSizeCutoff is the font size below which proportional kerning
	// no longer applies.
	KerningSizeCutoff float64
	// KerningDiscretization, if non-empty, replaces proportional kerning
	// below KerningSizeCutoff with a discretised per-bracket adjustment.
	KerningDiscretization []KerningBracket
	// AdvancementOverrides maps a non-space character to a small-size
	// advancement override (spec §4.4 step 1): the resulting advance is
	// (tightWidth + 1px) + override, and requires the character to have
	// atlas positioning.
	AdvancementOverrides map[rune]float64
}

// TextMetrics is the result of MeasureText (spec §4.3).
type TextMetrics struct {
	Width                  float64
	Height                 float64
	ActualBoundingBoxLeft  float64
	ActualBoundingBoxRight float64
	FontBoundingBoxAscent  float64
	FontBoundingBoxDescent float64
}

// TextEngine measures and draws strings against a font's metrics and
// (optionally) its reconstructed atlas data. It holds no mutable state of
// its own; every call is parameterised by the FontMetrics/AtlasData the
// caller has loaded for the font in question (spec §5: "single-threaded
// cooperative", draw/measure are synchronous).
type TextEngine struct{}

// NewTextEngine returns a TextEngine.
func NewTextEngine() *TextEngine { return &TextEngine{} }

// MeasureText implements spec §4.3.
func (e *TextEngine) MeasureText(text []rune, id FontIdentity, metrics FontMetrics, atlas *AtlasData, props TextProperties) TextMetrics {
	if len(text) == 0 {
		return TextMetrics{}
	}

	var width float64
	advances := make([]int, len(text))
	for i := range text {
		advances[i] = e.calculateAdvancement(i, text, id.Size, metrics, atlas, props)
		width += float64(advances[i])
	}

	firstMetrics, _ := metrics.CharacterMetrics(text[0])
	lastMetrics, _ := metrics.CharacterMetrics(text[len(text)-1])

	widthBeforeLast := width - float64(advances[len(advances)-1])

	baselines := metrics.Baselines()
	return TextMetrics{
		Width:                  width,
		Height:                 math.Round(baselines.FontBoundingBoxAscent + baselines.FontBoundingBoxDescent),
		ActualBoundingBoxLeft:  firstMetrics.ActualBoundingBoxLeft,
		ActualBoundingBoxRight: widthBeforeLast + lastMetrics.ActualBoundingBoxRight,
		FontBoundingBoxAscent:  baselines.FontBoundingBoxAscent,
		FontBoundingBoxDescent: baselines.FontBoundingBoxDescent,
	}
}

// calculateAdvancement implements spec §4.4: the integer pixel advance
// after the i-th glyph in text.
func (e *TextEngine) calculateAdvancement(i int, text []rune, fontSize float64, metrics FontMetrics, atlas *AtlasData, props TextProperties) int {
	c := text[i]
	cm, _ := metrics.CharacterMetrics(c)

	x := cm.Width
	if c == ' ' {
		if override, ok := metrics.SpaceAdvancementOverride(); ok {
			x = override
		}
	} else if override, ok := props.AdvancementOverrides[c]; ok && atlas != nil {
		if g, ok := atlas.Positioning.Get(c); ok {
			x = float64(g.TightWidth+1) + override
		}
	}

	if i+1 < len(text) {
		right := text[i+1]
		kerningVal, found := metrics.Kerning(c, right)
		if !found {
			kerningVal = 0
		}

		belowCutoff := props.KerningSizeCutoff > 0 && fontSize < props.KerningSizeCutoff
		switch {
		case belowCutoff && len(props.KerningDiscretization) > 0:
			x -= discretize(kerningVal, props.KerningDiscretization)
		case belowCutoff:
			// below the cutoff with no discretisation table: kerning is zero.
		default:
			x -= x * kerningVal
		}
	}

	return int(math.Round(x))
}

// DrawResult is the outcome of DrawTextFromAtlas (spec §4.5, §7).
type DrawResult struct {
	Rendered         bool
	Status           StatusCode
	PlaceholdersUsed bool
	Width            int
}

// DrawTextFromAtlas implements spec §4.5. dst receives the blits and
// placeholder fills; it is any mutable image, most commonly *image.RGBA.
func (e *TextEngine) DrawTextFromAtlas(dst draw.Image, text []rune, x, y int, id FontIdentity, metrics *FontMetrics, atlas *AtlasData, props TextProperties) DrawResult {
	if metrics == nil {
		return DrawResult{Rendered: true, Status: StatusNoMetrics, PlaceholdersUsed: true}
	}

	status := StatusOK
	placeholders := false
	if atlas == nil {
		status = StatusNoAtlas
		placeholders = true
	}

	penX := float64(x)
	for i, c := range text {
		cm, haveMetrics := metrics.CharacterMetrics(c)
		if !haveMetrics {
			status = StatusPartialMetrics
		}

		var g GlyphPlacement
		var haveGlyph bool
		if atlas != nil {
			g, haveGlyph = atlas.Positioning.Get(c)
			if !haveGlyph && c != ' ' {
				if status == StatusOK {
					status = StatusPartialAtlas
				}
			}
		}

		if haveGlyph {
			dx := math.Round(penX + g.Dx)
			dy := math.Round(float64(y) + g.Dy)
			srcRect := image.Rect(g.XInAtlas, g.YInAtlas, g.XInAtlas+g.TightWidth, g.YInAtlas+g.TightHeight)
			draw.Draw(dst, image.Rect(int(dx), int(dy), int(dx)+g.TightWidth, int(dy)+g.TightHeight),
				atlas.Image.Pix(), srcRect.Min, draw.Over)
		} else if c != ' ' {
			placeholders = true
			w, h := placeholderCellSize(cm, haveMetrics)
			dx := int(math.Round(penX))
			draw.Draw(dst, image.Rect(dx, y, dx+w, y+h), image.NewUniform(placeholderColor), image.Point{}, draw.Over)
		}

		penX += float64(e.calculateAdvancement(i, text, id.Size, *metrics, atlas, props))
	}

	return DrawResult{
		Rendered:         true,
		Status:           status,
		PlaceholdersUsed: placeholders,
		Width:            int(math.Round(penX - float64(x))),
	}
}

// placeholderColor fills a missing-glyph placeholder rectangle (spec §7,
// glossary "Placeholder").
var placeholderColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// placeholderCellSize sizes a placeholder rectangle from whatever
// measurement is available, or a default size if none is (spec §7:
// "placeholder rectangles sized by approximated metrics if available, or
// a default size otherwise").
func placeholderCellSize(cm CharacterMetrics, haveMetrics bool) (w, h int) {
	if !haveMetrics || cm.Width <= 0 {
		return 8, 8
	}
	w = int(math.Round(cm.Width))
	h = int(math.Round(cm.ActualBoundingBoxAscent + cm.ActualBoundingBoxDescent))
	if h <= 0 {
		h = int(math.Round(cm.Width))
	}
	return w, h
}
