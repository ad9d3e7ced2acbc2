package crispfont

import (
	"image"
	"math"

	"github.com/gogpu/crispfont/internal/inkscan"
	"github.com/gogpu/crispfont/rectpack"
)

// cellWidth returns the wide-atlas cell width for character c, in
// physical pixels (spec §3, "Cell dimensions").
func cellWidth(cm CharacterMetrics, pixelDensity float64) int {
	return int(math.Round((cm.ActualBoundingBoxLeft + cm.ActualBoundingBoxRight) * pixelDensity))
}

// cellHeight returns the wide-atlas cell height, constant for the font.
func cellHeight(b Baselines, pixelDensity float64) int {
	return int(math.Round((b.FontBoundingBoxAscent + b.FontBoundingBoxDescent) * pixelDensity))
}

// pixelDensityOf defaults to 1 when identity carries no density (spec
// §4.2, "pixel density inference").
func pixelDensityOf(id FontIdentity) float64 {
	if id.PixelDensity <= 0 {
		return 1
	}
	return id.PixelDensity
}

// AtlasReconstructor rebuilds a tight atlas and its positioning from a
// grid-packed wide atlas, given the font metrics that describe the
// grid's cell geometry (spec §4.2).
type AtlasReconstructor struct{}

// NewAtlasReconstructor returns a reconstructor. It is stateless and
// safe for concurrent use.
func NewAtlasReconstructor() *AtlasReconstructor { return &AtlasReconstructor{} }

// Reconstruct produces AtlasData from a decoded wide atlas and the
// font's metrics. The wide atlas layout is the grid contract from spec
// §4.2: characters in canonical order, columns = ceil(sqrt(N)),
// rows = ceil(N/columns), per-column max cell width, row Y = row*cellHeight.
func (r *AtlasReconstructor) Reconstruct(id FontIdentity, metrics FontMetrics, wide ImageSource) (AtlasData, error) {
	density := pixelDensityOf(id)
	chars := metrics.Characters()
	sortRunesCanonical(chars)
	if len(chars) == 0 {
		return AtlasData{}, &ReconstructionError{ID: id, Reason: "font metrics have no characters"}
	}

	baselines := metrics.Baselines()
	ch := cellHeight(baselines, density)
	if ch <= 0 {
		return AtlasData{}, &ReconstructionError{ID: id, Reason: "computed cell height is non-positive"}
	}

	widths := make([]int, len(chars))
	for i, c := range chars {
		cm, ok := metrics.CharacterMetrics(c)
		if !ok {
			return AtlasData{}, &ReconstructionError{ID: id, Reason: "missing character metrics during reconstruction"}
		}
		widths[i] = cellWidth(cm, density)
	}

	grid := rectpack.NewVariableGrid(widths, ch)
	img := wide.GetImageData()
	bounds := img.Bounds()
	if bounds.Dx() < grid.TotalWidth() || bounds.Dy() < grid.TotalHeight() {
		return AtlasData{}, &ReconstructionError{ID: id, Reason: "wide atlas image is smaller than the grid it must contain"}
	}

	row := &rectpack.RowPacker{}
	posBuilder := NewAtlasPositioningBuilder()
	type placement struct {
		char   rune
		bounds inkscan.Bounds
		cellX  int
		cellY  int
	}
	var placed []placement

	for i, c := range chars {
		cw := widths[i]
		if cw <= 0 {
			continue
		}
		gx, gy := grid.CellOrigin(i)
		gx += bounds.Min.X
		gy += bounds.Min.Y

		b, ok := inkscan.Scan(img, gx, gy, cw, ch)
		if !ok {
			continue
		}

		cm, _ := metrics.CharacterMetrics(c)
		distanceFromCharBottomToCellBottom := float64(ch - (b.Top + b.Height - 1) - 1)
		dx := -math.Round(cm.ActualBoundingBoxLeft)*density + float64(b.Left)
		dy := -float64(b.Height) - distanceFromCharBottomToCellBottom + density

		x := row.Allocate(b.Width)
		if err := posBuilder.Set(c, GlyphPlacement{
			TightWidth:  b.Width,
			TightHeight: b.Height,
			XInAtlas:    x,
			YInAtlas:    0,
			Dx:          dx,
			Dy:          dy,
		}); err != nil {
			return AtlasData{}, err
		}
		placed = append(placed, placement{char: c, bounds: b, cellX: gx, cellY: gy})
	}

	positioning := posBuilder.Build()
	if positioning.Len() == 0 {
		return AtlasData{}, &ReconstructionError{ID: id, Reason: "reconstruction produced no glyphs"}
	}

	tight := image.NewRGBA(image.Rect(0, 0, row.Width(), ch))
	for _, p := range placed {
		g, _ := positioning.Get(p.char)
		srcRect := image.Rect(p.cellX+p.bounds.Left, p.cellY+p.bounds.Top,
			p.cellX+p.bounds.Left+p.bounds.Width, p.cellY+p.bounds.Top+p.bounds.Height)
		dstRect := image.Rect(g.XInAtlas, 0, g.XInAtlas+p.bounds.Width, p.bounds.Height)
		drawCopy(tight, dstRect, img, srcRect.Min)
	}

	data := AtlasData{Image: WrapAtlasImage(tight), Positioning: positioning}
	if err := data.Validate(); err != nil {
		return AtlasData{}, err
	}
	return data, nil
}

// drawCopy copies src starting at srcMin into dst's dstRect, pixel by
// pixel — the reconstructor never depends on the draw package, keeping
// the dependency surface small.
func drawCopy(dst *image.RGBA, dstRect image.Rectangle, src image.Image, srcMin image.Point) {
	w := dstRect.Dx()
	h := dstRect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(dstRect.Min.X+x, dstRect.Min.Y+y, src.At(srcMin.X+x, srcMin.Y+y))
		}
	}
}
