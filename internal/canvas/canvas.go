// Package canvas implements the canvas value: a rectangular border of wire
// tiles framing an interior tile region, treated as a 2-D {0,1} pixel
// buffer with functional (copy-on-write) update.
package canvas

import (
	"fmt"

	"github.com/pspoerri/tilegrid/internal/value"
)

// Canvas is a 2-D {0,1} pixel buffer. Position is set only by the
// recogniser (Recognize); every functional update clears it, since a
// written canvas is no longer anchored to a discovered grid location.
// Canvas implements value.Canvas.
type Canvas struct {
	hasPosition bool
	posX, posY  int // tile-grid coordinates of the canvas's corner, when known
	width       int // pixels
	height      int // pixels
	data        [][]int
}

var _ value.Canvas = (*Canvas)(nil)

// New builds a canvas from a flattened pixel buffer. Used both by the
// recogniser and by tests.
func New(width, height int, data [][]int, posX, posY int, hasPosition bool) *Canvas {
	return &Canvas{
		hasPosition: hasPosition,
		posX:        posX,
		posY:        posY,
		width:       width,
		height:      height,
		data:        data,
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) Position() (x, y int, ok bool) {
	return c.posX, c.posY, c.hasPosition
}

func (c *Canvas) Read(x, y int) (int, error) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, fmt.Errorf("canvas read out of bounds: (%d, %d) not in %dx%d", x, y, c.width, c.height)
	}
	return c.data[y][x], nil
}

// Write returns a fresh canvas with (x, y) set to v. The returned canvas
// has no discovery position and owns a freshly copied data slice.
func (c *Canvas) Write(x, y, v int) (value.Canvas, error) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return nil, fmt.Errorf("canvas write out of bounds: (%d, %d) not in %dx%d", x, y, c.width, c.height)
	}
	newData := make([][]int, c.height)
	for row := range c.data {
		newData[row] = append([]int(nil), c.data[row]...)
	}
	newData[y][x] = v
	return &Canvas{width: c.width, height: c.height, data: newData}, nil
}
