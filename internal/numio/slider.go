package numio

import (
	"fmt"

	"github.com/pspoerri/tilegrid/internal/value"
)

// ReadSlider decodes the slider widget whose left endpoint is at (x, y):
// a run of functions/slider_m and wire_we tiles terminated by
// functions/slider_r, with numeric endpoints read from the row above.
// The slider's value linearly interpolates between the endpoints using the
// knob's (the rightmost slider_m's) position.
func ReadSlider(tiles TileGrid, x, y int) (value.Value, error) {
	lPos := x
	knobPos := -1
	px := x + 1
	for tiles.InBounds(px, y) && (tiles.At(px, y) == "functions/slider_m" || tiles.At(px, y) == "wire_we") {
		if tiles.At(px, y) == "functions/slider_m" {
			knobPos = px
		}
		px++
	}
	if knobPos < 0 {
		return value.Value{}, fmt.Errorf("no middle slider found at (%d, %d)", x, y)
	}
	if !tiles.InBounds(px, y) || tiles.At(px, y) != "functions/slider_r" {
		return value.Value{}, fmt.Errorf("no right slider found at (%d, %d)", x, y)
	}
	rPos := px

	left, ok := ReadNumber(tiles, lPos, y-1)
	if !ok {
		return value.Value{}, fmt.Errorf("no left value found at (%d, %d)", lPos, y-1)
	}
	right, ok := ReadNumber(tiles, rPos, y-1)
	if !ok {
		return value.Value{}, fmt.Errorf("no right value found at (%d, %d)", rPos, y-1)
	}

	// A single middle tile (slider_m directly between slider_l and
	// slider_r, no wire_we run) leaves no distance to interpolate across;
	// its one possible knob position is defined to read the left endpoint
	// rather than divide 0/0 into a NaN value.
	var alpha float64
	if denom := float64((rPos - 1) - (lPos + 1)); denom != 0 {
		alpha = float64(knobPos-(lPos+1)) / denom
	}
	v := left.AsFloat() + alpha*(right.AsFloat()-left.AsFloat())
	return value.Float(v), nil
}
