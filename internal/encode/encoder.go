package encode

import (
	"fmt"
	"image"
)

// Encoder serialises an image to bytes in a specific output format.
type Encoder interface {
	// Encode encodes img to bytes in the target format.
	Encode(img image.Image) ([]byte, error)

	// Format returns the format name (e.g. "jpeg", "png", "webp").
	Format() string

	// FileExtension returns the conventional file extension for this format,
	// including the leading dot.
	FileExtension() string
}

// NewEncoder builds an Encoder for the given format and quality (ignored by
// lossless formats). format is matched case-sensitively against the names
// returned by Encoder.Format, plus the "jpg" alias.
func NewEncoder(format string, quality int) (Encoder, error) {
	switch format {
	case "jpeg", "jpg":
		return &JPEGEncoder{Quality: quality}, nil
	case "png":
		return &PNGEncoder{}, nil
	case "webp":
		return newWebPEncoder(quality)
	default:
		return nil, fmt.Errorf("unsupported output format: %q (supported: jpeg, png, webp)", format)
	}
}
