// Package rasterhost implements the host rasteriser collaborator from
// spec §1: "provides character metrics + a rasterised glyph canvas with
// a known baseline." The builder drives a HostRasterizer once per
// character per font size; everything downstream (cropping, packing,
// corrections) is the builder's own concern.
package rasterhost

import (
	"image"

	"github.com/gogpu/crispfont"
)

// HostRasterizer is the capability the builder needs from a text
// rendering host: per-glyph metrics and a rasterised cell.
type HostRasterizer interface {
	// CharacterMetrics returns r's measurement at sizePx (CSS pixels).
	CharacterMetrics(r rune, sizePx float64) (crispfont.CharacterMetrics, error)

	// Baselines returns the font's shared baselines at sizePx.
	Baselines(sizePx float64) (crispfont.Baselines, error)

	// RasterizeCell draws r into a cell of the given physical-pixel size,
	// glyph positioned at the baseline, ready for the builder's 4-phase
	// ink scan (spec §4.7). pixelDensity is the CSS-to-physical-pixel
	// multiplier; cellWidth/cellHeight are already in physical pixels.
	RasterizeCell(r rune, sizePx, pixelDensity float64, cellWidth, cellHeight int) (image.Image, error)
}
