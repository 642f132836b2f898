package raster

import "github.com/pspoerri/tilegrid/internal/bitmask"

// TileGrid is the program as a 2-D array of tile names, rows×cols.
type TileGrid struct {
	Rows, Cols int
	Names      [][]string
}

func (g *TileGrid) At(x, y int) string {
	if !g.InBounds(x, y) {
		return ""
	}
	return g.Names[y][x]
}

func (g *TileGrid) InBounds(x, y int) bool {
	return y >= 0 && y < g.Rows && x >= 0 && x < g.Cols
}

// BitmaskGrid is the parallel grid of raw bitmasks, same shape as TileGrid.
type BitmaskGrid struct {
	Rows, Cols int
	Masks      [][]bitmask.TileBitmask
}

func (g *BitmaskGrid) At(x, y int) bitmask.TileBitmask {
	return g.Masks[y][x]
}

func (g *BitmaskGrid) InBounds(x, y int) bool {
	return y >= 0 && y < g.Rows && x >= 0 && x < g.Cols
}
