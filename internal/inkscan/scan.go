// Package inkscan implements the 4-phase ink-bounds scan shared by the
// runtime AtlasReconstructor and the Builder's glyph-capture crop step
// (spec §4.2, §4.7: "same 4-phase algorithm"). Keeping one copy avoids the
// two call sites drifting apart.
package inkscan

import "image"

// Bounds is a tight ink rectangle, relative to the cell origin it was
// scanned from (spec §4.2: "tight bounds are returned relative to the
// cell origin").
type Bounds struct {
	Left, Top     int
	Width, Height int
}

// Scan finds the tight pixel bounds of the opaque (alpha > 0) pixels
// within the cell [cellX, cellY, cellX+cellWidth, cellY+cellHeight) of
// img, using the 4-phase early-exit scan from spec §4.2:
//
//  1. bottom edge: rows bottom→top, first row with an opaque pixel
//  2. if no opaque pixel anywhere in the cell, the glyph is empty (ok=false)
//  3. top edge: rows top→bottom within [cellTop, bottom]
//  4. left edge: columns left→right within [top, bottom]
//  5. right edge: columns right→left within [top, bottom]
//
// Returned bounds are relative to (cellX, cellY).
func Scan(img image.Image, cellX, cellY, cellWidth, cellHeight int) (Bounds, bool) {
	cellTop := cellY
	cellBottom := cellY + cellHeight - 1
	cellLeft := cellX
	cellRight := cellX + cellWidth - 1

	rowHasInk := func(y int) bool {
		for x := cellLeft; x <= cellRight; x++ {
			if opaque(img, x, y) {
				return true
			}
		}
		return false
	}
	colHasInkInRange := func(x, top, bottom int) bool {
		for y := top; y <= bottom; y++ {
			if opaque(img, x, y) {
				return true
			}
		}
		return false
	}

	bottom := -1
	for y := cellBottom; y >= cellTop; y-- {
		if rowHasInk(y) {
			bottom = y
			break
		}
	}
	if bottom < 0 {
		return Bounds{}, false
	}

	top := bottom
	for y := cellTop; y <= bottom; y++ {
		if rowHasInk(y) {
			top = y
			break
		}
	}

	left := cellLeft
	for x := cellLeft; x <= cellRight; x++ {
		if colHasInkInRange(x, top, bottom) {
			left = x
			break
		}
	}

	right := cellRight
	for x := cellRight; x >= cellLeft; x-- {
		if colHasInkInRange(x, top, bottom) {
			right = x
			break
		}
	}

	return Bounds{
		Left:   left - cellX,
		Top:    top - cellY,
		Width:  right - left + 1,
		Height: bottom - top + 1,
	}, true
}

// opaque reports whether the pixel at (x, y) has non-zero alpha.
func opaque(img image.Image, x, y int) bool {
	_, _, _, a := img.At(x, y).RGBA()
	return a > 0
}
