// Package render implements the entry-point renderer: for each
// functions/entry tile it evaluates the program's (content, return canvas)
// pair and paints the result into a copy of the source image, via a
// pluggable encode.Encoder chosen by the caller for the final write.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/pspoerri/tilegrid/internal/eval"
	"github.com/pspoerri/tilegrid/internal/library"
	"github.com/pspoerri/tilegrid/internal/numio"
	"github.com/pspoerri/tilegrid/internal/tileenv"
	"github.com/pspoerri/tilegrid/internal/value"
)

var (
	red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// TileGrid is the minimal view the renderer needs to enumerate
// functions/entry tiles in row-major order.
type TileGrid interface {
	At(x, y int) string
}

// Render walks every functions/entry tile in row-major order, evaluates it,
// and paints its result into out (a mutable copy of the source image).
// Later entries win where return regions overlap, and a single malformed
// entry is skipped with a diagnostic rather than aborting the run. Per-entry
// diagnostics for a malformed entry are always logged; the per-entry
// success trace is gated on verbose, matching the rest of the CLI.
func Render(ev *eval.Evaluator, tiles TileGrid, rows, cols int, lib *library.Library, env tileenv.Env, baseGrid int, out *image.RGBA, verbose bool) {
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if tiles.At(x, y) != "functions/entry" {
				continue
			}
			renderEntry(ev, lib, env, baseGrid, out, x, y, verbose)
		}
	}
}

func renderEntry(ev *eval.Evaluator, lib *library.Library, env tileenv.Env, baseGrid int, out *image.RGBA, x, y int, verbose bool) {
	pair, err := ev.Eval(x, y, eval.DirNone, env)
	if err != nil {
		log.Printf("entry point at %d, %d: %v", x, y, err)
		return
	}
	if pair.Kind != value.KindPair {
		log.Printf("entry point at %d, %d: does not evaluate to a (content, return) pair", x, y)
		return
	}
	content, ret := *pair.Pair[0], *pair.Pair[1]

	if ret.Kind != value.KindCanvas {
		log.Printf("entry point at %d, %d (px %d, %d): has no canvas return", x, y, x*baseGrid, y*baseGrid)
		return
	}
	cx, cy, ok := ret.Canvas.Position()
	if !ok {
		log.Printf("entry point at %d, %d: return canvas for has no discovery position", x, y)
		return
	}
	px := cx*baseGrid + baseGrid
	py := cy*baseGrid + baseGrid

	switch content.Kind {
	case value.KindCanvas:
		if verbose {
			log.Printf("entry point at %d, %d evaluates to a canvas", x, y)
		}
		w, h := content.Canvas.Width(), content.Canvas.Height()
		scratch := getScratchRGBA(w, h)
		paintCanvas(scratch, content.Canvas)
		blit(out, scratch, px, py)
		putScratchRGBA(scratch)
	case value.KindInt, value.KindFloat:
		if verbose {
			log.Printf("entry point at %d, %d evaluates to number %s", x, y, content)
		}
		text := content.String()
		scratch := getScratchRGBA(len(text)*baseGrid, baseGrid)
		if err := paintNumber(scratch, lib, text, baseGrid); err != nil {
			log.Printf("entry point at %d, %d: %v", x, y, err)
		} else {
			blit(out, scratch, px, py)
		}
		putScratchRGBA(scratch)
	default:
		log.Printf("entry point at %d, %d evaluates to %s", x, y, content)
	}
}

// blit composites scratch onto out with its top-left corner at (px, py).
func blit(out, scratch *image.RGBA, px, py int) {
	bounds := scratch.Bounds()
	dstRect := image.Rect(px, py, px+bounds.Dx(), py+bounds.Dy())
	draw.Draw(out, dstRect, scratch, bounds.Min, draw.Src)
}

func paintCanvas(scratch *image.RGBA, c value.Canvas) {
	h, w := c.Height(), c.Width()
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			v, err := c.Read(tx, ty)
			if err != nil {
				continue
			}
			scratch.SetRGBA(tx, ty, pixelFor(v))
		}
	}
}

func pixelFor(bit int) color.RGBA {
	if bit == 1 {
		return red
	}
	return white
}

func paintNumber(scratch *image.RGBA, lib *library.Library, text string, baseGrid int) error {
	for ci := 0; ci < len(text); ci++ {
		name, ok := numio.GlyphForChar(text[ci])
		if !ok {
			return fmt.Errorf("character %q not found in number tiles", text[ci])
		}
		icon, ok := lib.Icon(name)
		if !ok {
			return fmt.Errorf("tile %s not found in library", name)
		}
		for idx, bit := range icon.Bits {
			tx := idx % baseGrid
			ty := idx / baseGrid
			v := 0
			if bit {
				v = 1
			}
			scratch.SetRGBA(ci*baseGrid+tx, ty, pixelFor(v))
		}
	}
	return nil
}
