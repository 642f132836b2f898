// Package bitmask implements black/non-black tile classification: turning a
// base_grid×base_grid pixel block into a comparable boolean bitmask. It is
// shared by the icon library loader and the program rasteriser so that tile
// identity is defined in exactly one place.
package bitmask

import (
	"fmt"
	"image"
	"image/color"
)

// DefaultBaseGrid is the default tile side length in pixels.
const DefaultBaseGrid = 5

// TileBitmask is a base_grid×base_grid boolean array: true marks a
// black-ish pixel. It is compared by value and used as a map key via Key(),
// matching the design note that bitmasks should be "fixed-length byte
// arrays or (base_grid²)-bit integers" compared for equality.
type TileBitmask struct {
	Size int
	Bits []bool // row-major, length Size*Size
}

// Key returns a canonical, comparable representation suitable for use as a
// map key (Go slices cannot be map keys directly).
func (b TileBitmask) Key() string {
	buf := make([]byte, len(b.Bits))
	for i, v := range b.Bits {
		if v {
			buf[i] = 1
		}
	}
	return string(buf)
}

// Equal reports whether two bitmasks hold identical bits.
func (b TileBitmask) Equal(o TileBitmask) bool {
	if b.Size != o.Size || len(b.Bits) != len(o.Bits) {
		return false
	}
	for i, v := range b.Bits {
		if o.Bits[i] != v {
			return false
		}
	}
	return true
}

// isBlack reports whether c's L1 distance from opaque black is less than 10.
func isBlack(c color.Color) bool {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	diff := absDiff(rgba.R, 0) + absDiff(rgba.G, 0) + absDiff(rgba.B, 0) + absDiff(rgba.A, 255)
	return diff < 10
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// Extract reads the baseGrid×baseGrid block of img with its top-left corner
// at pixel (px, py) and binarises it.
func Extract(img image.Image, px, py, baseGrid int) TileBitmask {
	bits := make([]bool, baseGrid*baseGrid)
	for ty := 0; ty < baseGrid; ty++ {
		for tx := 0; tx < baseGrid; tx++ {
			c := img.At(px+tx, py+ty)
			bits[ty*baseGrid+tx] = isBlack(c)
		}
	}
	return TileBitmask{Size: baseGrid, Bits: bits}
}

// ValidateDimensions checks the structural invariant that image dimensions
// are divisible by baseGrid.
func ValidateDimensions(w, h, baseGrid int) error {
	if baseGrid <= 0 {
		return fmt.Errorf("base grid must be positive, got %d", baseGrid)
	}
	if w%baseGrid != 0 || h%baseGrid != 0 {
		return fmt.Errorf("image dimensions %dx%d are not divisible by base grid %d", w, h, baseGrid)
	}
	return nil
}
