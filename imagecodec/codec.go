// Package imagecodec implements the physical image codec collaborator
// (spec §1: "The physical image codec (PNG/QOI) and filesystem I/O"):
// encoding and decoding the wide and tight atlas images the builder and
// loader pass around as raw pixels.
package imagecodec

import "image"

// Format names a concrete on-disk image encoding.
type Format string

const (
	// FormatPNG is backed by the standard library's image/png.
	FormatPNG Format = "png"
	// FormatQOI names the "Quite OK Image" format from spec §6's
	// alternate atlas extension. No QOI library exists in this module's
	// dependency set; selecting it returns ErrFormatUnavailable.
	FormatQOI Format = "qoi"
)

// Codec encodes and decodes atlas images. The loader and builder depend
// only on this interface, never on a specific format's package, so a QOI
// implementation can be added later without touching either.
type Codec interface {
	Encode(img image.Image) ([]byte, error)
	Decode(data []byte) (image.Image, error)
}

// ForFormat returns the Codec for format.
func ForFormat(format Format) (Codec, error) {
	switch format {
	case FormatPNG:
		return PNGCodec{}, nil
	case FormatQOI:
		return nil, ErrFormatUnavailable
	default:
		return nil, ErrUnsupportedFormat
	}
}
