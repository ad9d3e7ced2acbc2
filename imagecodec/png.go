package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// Errors returned by ForFormat and the codecs it constructs.
var (
	// ErrUnsupportedFormat is returned for a Format this package does not
	// recognise at all.
	ErrUnsupportedFormat = errors.New("imagecodec: unsupported format")
	// ErrFormatUnavailable is returned for a recognised Format with no
	// bundled implementation (spec §6: QOI is a named alternative, not a
	// shipped one).
	ErrFormatUnavailable = errors.New("imagecodec: format recognised but not implemented")
)

// PNGCodec implements Codec using the standard library's image/png. Atlas
// images are RGBA with alpha as ink opacity (spec §6); PNG round-trips
// that losslessly, so no alternative library is required for this format.
type PNGCodec struct{}

// Encode writes img as a PNG.
func (PNGCodec) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imagecodec: encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads a PNG.
func (PNGCodec) Decode(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imagecodec: decode PNG: %w", err)
	}
	return img, nil
}
