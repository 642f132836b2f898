package eval

import "github.com/pspoerri/tilegrid/internal/bitmask"

// stringGrid is a minimal TileGrid backed by a 2-D slice of
// tile names, with empty-string cells treated as the synthetic "empty" tile.
type stringGrid struct {
	rows [][]string
}

func (g *stringGrid) At(x, y int) string {
	if !g.InBounds(x, y) {
		return ""
	}
	return g.rows[y][x]
}

func (g *stringGrid) InBounds(x, y int) bool {
	return y >= 0 && y < len(g.rows) && x >= 0 && x < len(g.rows[y])
}

// maskGrid pairs with stringGrid for tests that only exercise the tile-name
// switch and never touch canvas recognition. Cells default to an all-false
// bitmask unless overridden, so distinct keys can be assigned per cell for
// label pre-pass tests.
type maskGrid struct {
	rows, cols int
	overrides  map[[2]int]bitmask.TileBitmask
}

func (g *maskGrid) At(x, y int) bitmask.TileBitmask {
	if m, ok := g.overrides[[2]int{x, y}]; ok {
		return m
	}
	return bitmask.TileBitmask{Size: 1, Bits: []bool{false}}
}

func (g *maskGrid) InBounds(x, y int) bool {
	return y >= 0 && y < g.rows && x >= 0 && x < g.cols
}

func (g *maskGrid) set(x, y int, key string) {
	if g.overrides == nil {
		g.overrides = make(map[[2]int]bitmask.TileBitmask)
	}
	bits := make([]bool, len(key))
	for i, c := range key {
		bits[i] = c != '0'
	}
	g.overrides[[2]int{x, y}] = bitmask.TileBitmask{Size: len(bits), Bits: bits}
}

func gridFromRows(rows ...[]string) (*stringGrid, *maskGrid) {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return &stringGrid{rows: rows}, &maskGrid{rows: len(rows), cols: cols}
}

// sparseGrid is a TileGrid backed by a sparse map keyed on (x, y), for tests
// whose wiring needs negative coordinates or spans too wide to hand-align as
// slice rows. Unset cells read as the synthetic empty tile; bounds are
// unchecked since these grids are built to stay self-consistent by
// construction.
type sparseGrid struct {
	cells map[[2]int]string
}

func (g *sparseGrid) At(x, y int) string {
	return g.cells[[2]int{x, y}]
}

func (g *sparseGrid) InBounds(x, y int) bool { return true }

// sparseMaskGrid pairs with sparseGrid for tests that never touch canvas
// recognition, so every cell can report the same all-false bitmask.
type sparseMaskGrid struct{}

func (sparseMaskGrid) At(x, y int) bitmask.TileBitmask {
	return bitmask.TileBitmask{Size: 1, Bits: []bool{false}}
}

func (sparseMaskGrid) InBounds(x, y int) bool { return true }

// vline fills a vertical run of tile at column x from row y0 to y1
// inclusive (y0 may be greater than y1; either order fills the same span).
func vline(cells map[[2]int]string, x, y0, y1 int, tile string) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		cells[[2]int{x, y}] = tile
	}
}

// hline fills a horizontal run of tile at row y from column x0 to x1
// inclusive (x0 may be greater than x1; either order fills the same span).
func hline(cells map[[2]int]string, x0, x1, y int, tile string) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		cells[[2]int{x, y}] = tile
	}
}
