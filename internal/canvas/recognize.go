package canvas

import (
	"github.com/pspoerri/tilegrid/internal/bitmask"
)

// TileGrid is the minimal view the recogniser needs of the program's tile
// name grid; internal/raster.TileGrid satisfies it.
type TileGrid interface {
	At(x, y int) string
	InBounds(x, y int) bool
}

// BitmaskGrid is the minimal view the recogniser needs of the program's raw
// bitmask grid; internal/raster.BitmaskGrid satisfies it.
type BitmaskGrid interface {
	At(x, y int) bitmask.TileBitmask
	InBounds(x, y int) bool
}

// Recognize attempts to close a canvas rectangle with top-left corner
// (x, y): walk east through wire_we to a wire_sw corner, walk south through
// wire_ns to a wire_ne corner, verify the remaining two edges and the
// bottom-right corner, then flatten the interior tiles into a single pixel
// buffer.
//
// Returns (nil, false) if the rectangle does not close ("not a canvas").
func Recognize(tiles TileGrid, masks BitmaskGrid, baseGrid, x, y int) (*Canvas, bool) {
	if tiles.At(x, y) != "canvas" {
		return nil, false
	}

	maxX := x + 1
	for tiles.InBounds(maxX, y) && tiles.At(maxX, y) == "wire_we" {
		maxX++
	}
	if !tiles.InBounds(maxX, y) || tiles.At(maxX, y) != "wire_sw" {
		return nil, false
	}

	maxY := y + 1
	for tiles.InBounds(x, maxY) && tiles.At(x, maxY) == "wire_ns" {
		maxY++
	}
	if !tiles.InBounds(x, maxY) || tiles.At(x, maxY) != "wire_ne" {
		return nil, false
	}

	for tx := x + 1; tx < maxX; tx++ {
		if tiles.At(tx, maxY) != "wire_we" {
			return nil, false
		}
	}
	for ty := y + 1; ty < maxY; ty++ {
		if tiles.At(maxX, ty) != "wire_ns" {
			return nil, false
		}
	}
	if tiles.At(maxX, maxY) != "wire_nw" {
		return nil, false
	}

	ch := maxY - (y + 1)
	cw := maxX - (x + 1)
	dw := cw * baseGrid
	dh := ch * baseGrid

	data := make([][]int, dh)
	for i := range data {
		data[i] = make([]int, dw)
	}

	for ty := 0; ty < ch; ty++ {
		for tx := 0; tx < cw; tx++ {
			bm := masks.At(x+1+tx, y+1+ty)
			for i := 0; i < baseGrid; i++ {
				for j := 0; j < baseGrid; j++ {
					v := 0
					if bm.Bits[i*baseGrid+j] {
						v = 1
					}
					data[ty*baseGrid+i][tx*baseGrid+j] = v
				}
			}
		}
	}

	return New(dw, dh, data, x, y, true), true
}
