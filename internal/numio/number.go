// Package numio decodes the two numeric-literal widgets of the tile
// language: horizontal digit/dot/minus runs, and sliders (a left/right
// numeric endpoint pair with an interpolating knob).
package numio

import (
	"strconv"
	"strings"

	"github.com/pspoerri/tilegrid/internal/value"
)

// TileGrid is the minimal view the readers need of the program's tile name
// grid; internal/raster.TileGrid satisfies it.
type TileGrid interface {
	At(x, y int) string
	InBounds(x, y int) bool
}

// digitGlyph maps a tile name to its textual character.
var digitGlyph = buildDigitGlyph()

func buildDigitGlyph() map[string]string {
	m := map[string]string{
		"functions/dot": ".",
		"functions/sub": "-",
	}
	for i := 0; i < 10; i++ {
		m["functions/"+strconv.Itoa(i)] = strconv.Itoa(i)
	}
	return m
}

// GlyphForChar is the inverse of digitGlyph, used by the entry-point
// renderer to find the tile name for a character of a formatted number.
func GlyphForChar(ch byte) (string, bool) {
	s := string(ch)
	for name, glyph := range digitGlyph {
		if glyph == s {
			return name, true
		}
	}
	return "", false
}

// ReadNumber consumes tiles eastward from (x, y) while they are digits,
// '.', or '-', concatenates them into a literal, and parses it: integer
// first, then float. Returns (value, true) only on a non-empty, parseable
// run.
func ReadNumber(tiles TileGrid, x, y int) (value.Value, bool) {
	var sb strings.Builder
	for tiles.InBounds(x, y) {
		glyph, ok := digitGlyph[tiles.At(x, y)]
		if !ok {
			break
		}
		sb.WriteString(glyph)
		x++
	}
	s := sb.String()
	if s == "" {
		return value.Value{}, false
	}
	if iv, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(iv), true
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Float(fv), true
	}
	return value.Value{}, false
}
