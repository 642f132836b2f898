package eval

import (
	"log"

	"github.com/pspoerri/tilegrid/internal/tileenv"
	"github.com/pspoerri/tilegrid/internal/value"
)

type labelBinding struct {
	iconKey string
	val     value.Value
}

// BuildLabelEnvironment runs the label pre-pass: for every `label` tile, it
// takes the raw bitmask to its east as an icon key, evaluates the
// expression to its west under the empty environment, and records (icon,
// value). It then scans every grid cell and binds (x, y) -> value for any
// cell whose raw bitmask equals a label's icon, first match in scan order
// winning ties.
func (ev *Evaluator) BuildLabelEnvironment() tileenv.Env {
	rows, cols := ev.Dims.Rows, ev.Dims.Cols
	var bindings []labelBinding

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if ev.Tiles.At(x, y) != "label" {
				continue
			}
			if !ev.Tiles.InBounds(x+1, y) {
				log.Printf("label at %s has no icon cell to its east", position(x, y, ev.BaseGrid))
				continue
			}
			icon := ev.Masks.At(x+1, y).Key()
			v, err := ev.Eval(x-1, y, DirW, tileenv.Empty())
			if err != nil {
				log.Printf("label at %s: evaluating bound expression: %v", position(x, y, ev.BaseGrid), err)
				continue
			}
			bindings = append(bindings, labelBinding{iconKey: icon, val: v})
		}
	}

	builder := tileenv.NewBuilder()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			key := ev.Masks.At(x, y).Key()
			for _, b := range bindings {
				if b.iconKey == key {
					builder.Set(tileenv.Pos{X: x, Y: y}, b.val)
					break
				}
			}
		}
	}
	return builder.Build()
}
