// Package eval implements the spatial dataflow evaluator: a recursive,
// memo-free traversal `Eval(x, y, arrival, env) -> Value` that interprets
// wire routing, joins, bridges, end-caps, application, lambda, and
// primitive functions directly over the tile grid (no separate AST).
package eval

import (
	"fmt"

	"github.com/pspoerri/tilegrid/internal/bitmask"
	"github.com/pspoerri/tilegrid/internal/canvas"
	"github.com/pspoerri/tilegrid/internal/numio"
	"github.com/pspoerri/tilegrid/internal/tileenv"
	"github.com/pspoerri/tilegrid/internal/value"
)

// TileGrid is the minimal view Eval needs of the program's tile name grid.
type TileGrid interface {
	At(x, y int) string
	InBounds(x, y int) bool
}

// BitmaskGrid is the minimal view Eval needs of the program's raw bitmask
// grid.
type BitmaskGrid interface {
	At(x, y int) bitmask.TileBitmask
	InBounds(x, y int) bool
}

// Dims carries the grid's row/column count, needed by passes (like the
// label pre-pass) that must scan every cell and so cannot work through the
// minimal At/InBounds interfaces alone.
type Dims struct {
	Rows, Cols int
}

// Evaluator holds the read-only program grids and a reduction-step budget
// bounding runaway recursion.
type Evaluator struct {
	Tiles    TileGrid
	Masks    BitmaskGrid
	BaseGrid int
	Dims     Dims

	stepsUsed   int64
	stepsBudget int64
}

// NewEvaluator constructs an Evaluator with the given reduction-step budget.
// A budget of 0 or less disables the limit.
func NewEvaluator(tiles TileGrid, masks BitmaskGrid, baseGrid int, dims Dims, stepBudget int64) *Evaluator {
	return &Evaluator{Tiles: tiles, Masks: masks, BaseGrid: baseGrid, Dims: dims, stepsBudget: stepBudget}
}

func (ev *Evaluator) step() error {
	ev.stepsUsed++
	if ev.stepsBudget > 0 && ev.stepsUsed > ev.stepsBudget {
		return fmt.Errorf("exceeded reduction budget of %d steps", ev.stepsBudget)
	}
	return nil
}

func position(x, y, baseGrid int) string {
	return fmt.Sprintf("%d, %d (%d, %d)", x, y, x*baseGrid, y*baseGrid)
}

// Eval evaluates the tile at (x, y), arriving from direction dir, under
// environment env. Wire traversal (straight runs, corners, bridges, joins,
// end-caps) is flattened into the loop below rather than recursing per
// tile; only app, lambda application, entry, and the functions that take
// sub-expressions as arguments recurse.
func (ev *Evaluator) Eval(x, y int, dir Direction, env tileenv.Env) (value.Value, error) {
	for {
		if v, ok := env.Lookup(tileenv.Pos{X: x, Y: y}); ok {
			return v, nil
		}
		if err := ev.step(); err != nil {
			return value.Value{}, err
		}
		if !ev.Tiles.InBounds(x, y) {
			return value.Value{}, fmt.Errorf("out of bounds at %s", position(x, y, ev.BaseGrid))
		}
		tile := ev.Tiles.At(x, y)

		switch tile {
		case "canvas":
			c, ok := canvas.Recognize(ev.Tiles, ev.Masks, ev.BaseGrid, x, y)
			if !ok {
				return value.Value{}, fmt.Errorf("not a canvas at %s", position(x, y, ev.BaseGrid))
			}
			return value.FromCanvas(c), nil

		case "end_e":
			if dir == DirW {
				return value.Value{}, fmt.Errorf("wrong side %s at %s for tile end_e", dir, position(x, y, ev.BaseGrid))
			}
			x, dir = x+1, DirE
			continue
		case "end_s":
			if dir == DirN {
				return value.Value{}, fmt.Errorf("wrong side %s at %s for tile end_s", dir, position(x, y, ev.BaseGrid))
			}
			y, dir = y+1, DirS
			continue

		case "wire_ns":
			switch dir {
			case DirN:
				y, dir = y-1, DirN
				continue
			case DirS:
				y, dir = y+1, DirS
				continue
			}
		case "wire_we":
			switch dir {
			case DirE:
				x, dir = x+1, DirE
				continue
			case DirW:
				x, dir = x-1, DirW
				continue
			}
		case "wire_ne":
			switch dir {
			case DirW:
				y, dir = y-1, DirN
				continue
			case DirS:
				x, dir = x+1, DirE
				continue
			}
		case "wire_nw":
			switch dir {
			case DirE:
				y, dir = y-1, DirN
				continue
			case DirS:
				x, dir = x-1, DirW
				continue
			}
		case "wire_se":
			switch dir {
			case DirN:
				x, dir = x+1, DirE
				continue
			case DirW:
				y, dir = y+1, DirS
				continue
			}
		case "wire_sw":
			switch dir {
			case DirN:
				x, dir = x-1, DirW
				continue
			case DirE:
				y, dir = y+1, DirS
				continue
			}
		case "bridge":
			switch dir {
			case DirN:
				y, dir = y-1, DirN
				continue
			case DirS:
				y, dir = y+1, DirS
				continue
			case DirE:
				x, dir = x+1, DirE
				continue
			case DirW:
				x, dir = x-1, DirW
				continue
			}
		case "join_nse":
			if dir == DirN || dir == DirW {
				y, dir = y-1, DirN
				continue
			}
		case "join_nsw":
			if dir == DirN || dir == DirE {
				y, dir = y-1, DirN
				continue
			}
		case "join_nwe":
			if dir == DirE || dir == DirW {
				y, dir = y-1, DirN
				continue
			}

		case "app":
			if dir != DirW {
				break
			}
			fn, err := ev.Eval(x, y+1, DirS, env)
			if err != nil {
				return value.Value{}, fmt.Errorf("function not found at %s: %w", position(x, y, ev.BaseGrid), err)
			}
			arg, err := ev.Eval(x, y-1, DirN, env)
			if err != nil {
				return value.Value{}, fmt.Errorf("argument not found at %s: %w", position(x, y, ev.BaseGrid), err)
			}
			return ev.apply(fn, arg, x, y)

		case "lambda":
			return ev.makeLambda(x, y, env), nil

		case "functions/entry":
			content, err := ev.Eval(x+1, y, DirNone, env)
			if err != nil {
				return value.Value{}, fmt.Errorf("entry point at %s has no content: %w", position(x, y, ev.BaseGrid), err)
			}
			ret, err := ev.Eval(x+2, y, DirNone, env)
			if err != nil {
				return value.Value{}, fmt.Errorf("entry point at %s has no return canvas: %w", position(x, y, ev.BaseGrid), err)
			}
			return value.Pair(content, ret), nil

		case "functions/slider_l":
			v, err := numio.ReadSlider(ev.Tiles, x, y)
			if err != nil {
				return value.Value{}, fmt.Errorf("slider at %s: %w", position(x, y, ev.BaseGrid), err)
			}
			return v, nil
		}

		if n, ok := numio.ReadNumber(ev.Tiles, x, y); ok {
			return n, nil
		}

		if fn, ok := primitiveValue(tile); ok {
			return fn, nil
		}

		return value.Value{}, fmt.Errorf("wrong side %s at %s for tile %s (or %s is not implemented)",
			dir, position(x, y, ev.BaseGrid), tile, tile)
	}
}

// apply invokes fn with arg, wrapping the failure with the app tile's
// position for diagnostics.
func (ev *Evaluator) apply(fn, arg value.Value, appX, appY int) (value.Value, error) {
	if fn.Kind != value.KindFunction {
		return value.Value{}, fmt.Errorf("app at %s: not a function (got %s)", position(appX, appY, ev.BaseGrid), fn.Kind)
	}
	return fn.Fn(arg)
}

// makeLambda returns a closure over the lambda's defining position. When
// applied, it evaluates the cell two to the east under an environment
// extended with the parameter binding at (x+1, y) and a recursive
// self-binding at (x, y) — intrinsic fixed-point recursion with no
// explicit combinator.
func (ev *Evaluator) makeLambda(x, y int, env tileenv.Env) value.Value {
	var self value.Value
	fn := value.Func(func(arg value.Value) (value.Value, error) {
		extended := env.Extend(tileenv.Pos{X: x + 1, Y: y}, arg).Extend(tileenv.Pos{X: x, Y: y}, self)
		return ev.Eval(x+2, y, DirNone, extended)
	})
	self = value.FromFunc(fn)
	return self
}
