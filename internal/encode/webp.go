package encode

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gen2brain/webp"
)

// WebPEncoder encodes the output image as WebP through the same
// gen2brain/webp codec decode.go already uses to read WebP programs — its
// WASM-via-wazero libwebp build needs no CGO or system libwebp install.
type WebPEncoder struct {
	Quality int
}

func newWebPEncoder(quality int) (Encoder, error) {
	if quality <= 0 {
		quality = 85
	}
	return &WebPEncoder{Quality: quality}, nil
}

func (e *WebPEncoder) Encode(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("webp: empty image")
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, webp.Options{Quality: float32(e.Quality)}); err != nil {
		return nil, fmt.Errorf("webp: encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *WebPEncoder) Format() string        { return "webp" }
func (e *WebPEncoder) FileExtension() string { return ".webp" }
