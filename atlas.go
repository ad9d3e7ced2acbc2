package crispfont

import "image"

// ImageSourceKind tags an ImageSource's origin.
type ImageSourceKind int

const (
	// ImageSourceCanvas is a glyph canvas produced in-process (e.g. by a
	// HostRasterizer or the builder's crop step).
	ImageSourceCanvas ImageSourceKind = iota
	// ImageSourceDecoded is an image decoded from a fetched byte stream
	// (e.g. the wide atlas PNG fetched by the Loader).
	ImageSourceDecoded
)

// ImageSource is the tagged variant from spec §9 that replaces
// duck-typed "canvas or image" sources: the reconstructor and loader never
// branch on the runtime type of the pixel source, they call GetImageData
// through this single capability regardless of where the pixels came from.
type ImageSource struct {
	kind image.Image
	tag  ImageSourceKind
}

// NewCanvasImageSource wraps an in-process glyph canvas.
func NewCanvasImageSource(img image.Image) ImageSource {
	return ImageSource{kind: img, tag: ImageSourceCanvas}
}

// NewDecodedImageSource wraps a decoded image fetched from storage.
func NewDecodedImageSource(img image.Image) ImageSource {
	return ImageSource{kind: img, tag: ImageSourceDecoded}
}

// Kind reports whether this source is an in-process canvas or a decoded
// image.
func (s ImageSource) Kind() ImageSourceKind { return s.tag }

// GetImageData returns the pixel data, regardless of origin.
func (s ImageSource) GetImageData() image.Image { return s.kind }

// GlyphPlacement is a single character's placement within a tight atlas
// and its blit offset (spec §3, "AtlasPositioning"). All fields are in
// physical pixels.
type GlyphPlacement struct {
	TightWidth, TightHeight int
	XInAtlas, YInAtlas      int
	Dx, Dy                  float64
}

// AtlasPositioning holds, for every character present in a tight atlas,
// its GlyphPlacement. Invariant (spec §3): every entry has
// TightWidth > 0 && TightHeight > 0 — empty glyphs (no ink, e.g. space)
// simply have no entry. Construct with AtlasPositioningBuilder.
type AtlasPositioning struct {
	entries map[rune]GlyphPlacement
}

// Get returns the placement for r, if present.
func (p AtlasPositioning) Get(r rune) (GlyphPlacement, bool) {
	g, ok := p.entries[r]
	return g, ok
}

// Characters returns every character with a placement, in canonical
// CharacterSet order.
func (p AtlasPositioning) Characters() []rune {
	out := make([]rune, 0, len(p.entries))
	for r := range p.entries {
		out = append(out, r)
	}
	sortRunesCanonical(out)
	return out
}

// Len returns the number of placed characters.
func (p AtlasPositioning) Len() int { return len(p.entries) }

// AtlasPositioningBuilder accumulates glyph placements and freezes them
// into an immutable AtlasPositioning.
type AtlasPositioningBuilder struct {
	entries map[rune]GlyphPlacement
}

// NewAtlasPositioningBuilder returns an empty builder.
func NewAtlasPositioningBuilder() *AtlasPositioningBuilder {
	return &AtlasPositioningBuilder{entries: make(map[rune]GlyphPlacement)}
}

// Set records r's placement. It returns an error, without mutating the
// builder, if width or height is non-positive — the invariant from spec
// §3 that every positioning entry has ink.
func (b *AtlasPositioningBuilder) Set(r rune, g GlyphPlacement) error {
	if g.TightWidth <= 0 || g.TightHeight <= 0 {
		return &ReconstructionError{Reason: "placement for a character must have positive width and height"}
	}
	b.entries[r] = g
	return nil
}

// Build freezes the accumulated placements.
func (b *AtlasPositioningBuilder) Build() AtlasPositioning {
	entries := make(map[rune]GlyphPlacement, len(b.entries))
	for r, g := range b.entries {
		entries[r] = g
	}
	return AtlasPositioning{entries: entries}
}

// AtlasImage is an owned, immutable RGBA pixel buffer.
type AtlasImage struct {
	pix *image.RGBA
}

// NewAtlasImage creates an AtlasImage of the given size. The returned
// image is filled with the caller via Pix before being wrapped — once
// wrapped into an AtlasData it must not be mutated further.
func NewAtlasImage(width, height int) *AtlasImage {
	return &AtlasImage{pix: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// WrapAtlasImage adopts an already-rendered *image.RGBA as an AtlasImage
// without copying.
func WrapAtlasImage(img *image.RGBA) *AtlasImage {
	return &AtlasImage{pix: img}
}

// Width and Height return the image dimensions.
func (a *AtlasImage) Width() int  { return a.pix.Bounds().Dx() }
func (a *AtlasImage) Height() int { return a.pix.Bounds().Dy() }

// Pix returns the backing RGBA buffer. Callers must treat it as
// read-only once the AtlasImage has been published into an AtlasData.
func (a *AtlasImage) Pix() *image.RGBA { return a.pix }

// AtlasData pairs an AtlasImage with its AtlasPositioning. Invariant
// (spec §3): every positioning entry points into valid pixels, i.e.
// XInAtlas+TightWidth <= image width and YInAtlas+TightHeight <= image
// height for every placed character.
type AtlasData struct {
	Image       *AtlasImage
	Positioning AtlasPositioning
}

// Validate checks the AtlasData invariant.
func (d AtlasData) Validate() error {
	w, h := d.Image.Width(), d.Image.Height()
	for _, r := range d.Positioning.Characters() {
		g, _ := d.Positioning.Get(r)
		if g.XInAtlas+g.TightWidth > w || g.YInAtlas+g.TightHeight > h {
			return &ReconstructionError{Reason: "positioning entry points outside the atlas image"}
		}
	}
	return nil
}
