package eval

import (
	"fmt"
	"math"

	"github.com/pspoerri/tilegrid/internal/value"
)

// primitiveValue returns the curried Value for a primitive function tile,
// or false if tile does not name one.
func primitiveValue(tile string) (value.Value, bool) {
	switch tile {
	case "functions/add":
		return curry2(arithmetic(func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })), true
	case "functions/sub":
		return curry2(arithmetic(func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })), true
	case "functions/mul":
		return curry2(arithmetic(func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })), true
	case "functions/mod":
		return curry2(arithmetic(floorModInt, floorModFloat)), true
	case "functions/pow":
		return curry2(func(a, b value.Value) (value.Value, error) {
			if a.Kind == value.KindInt && b.Kind == value.KindInt && b.Int >= 0 {
				return value.Int(intPow(a.Int, b.Int)), nil
			}
			return value.Float(math.Pow(a.AsFloat(), b.AsFloat())), nil
		}), true
	case "functions/div":
		return curry2(divide), true
	case "functions/floor":
		return curry1(func(a value.Value) (value.Value, error) {
			if !a.IsNumeric() {
				return value.Value{}, fmt.Errorf("floor: expected a number, got %s", a.Kind)
			}
			return value.Int(int64(math.Trunc(a.AsFloat()))), nil
		}), true

	case "functions/equal":
		return curry2(compareEq(true)), true
	case "functions/unequal":
		return curry2(compareEq(false)), true
	case "functions/greater":
		return curry2(compareOrd(func(c int) bool { return c > 0 })), true
	case "functions/less":
		return curry2(compareOrd(func(c int) bool { return c < 0 })), true
	case "functions/greater_equal":
		return curry2(compareOrd(func(c int) bool { return c >= 0 })), true
	case "functions/less_equal":
		return curry2(compareOrd(func(c int) bool { return c <= 0 })), true

	case "functions/and":
		return curry2(func(a, b value.Value) (value.Value, error) {
			at, err := a.Truthy()
			if err != nil {
				return value.Value{}, fmt.Errorf("and: %w", err)
			}
			if !at {
				return value.Bool(false), nil
			}
			bt, err := b.Truthy()
			if err != nil {
				return value.Value{}, fmt.Errorf("and: %w", err)
			}
			return value.Bool(bt), nil
		}), true
	case "functions/or":
		return curry2(func(a, b value.Value) (value.Value, error) {
			at, err := a.Truthy()
			if err != nil {
				return value.Value{}, fmt.Errorf("or: %w", err)
			}
			if at {
				return value.Bool(true), nil
			}
			bt, err := b.Truthy()
			if err != nil {
				return value.Value{}, fmt.Errorf("or: %w", err)
			}
			return value.Bool(bt), nil
		}), true
	case "functions/not":
		return curry1(func(a value.Value) (value.Value, error) {
			t, err := a.Truthy()
			if err != nil {
				return value.Value{}, fmt.Errorf("not: %w", err)
			}
			return value.Bool(!t), nil
		}), true

	case "functions/if":
		return curry3(func(cond, then, els value.Value) (value.Value, error) {
			truth, err := cond.Truthy()
			if err != nil {
				return value.Value{}, fmt.Errorf("if: %w", err)
			}
			branch := els
			if truth {
				branch = then
			}
			if branch.Kind != value.KindFunction {
				return value.Value{}, fmt.Errorf("if: branch is not a thunk (got %s)", branch.Kind)
			}
			return branch.Fn(value.Unit())
		}), true

	case "functions/width":
		return curry1(func(a value.Value) (value.Value, error) {
			if a.Kind != value.KindCanvas {
				return value.Value{}, fmt.Errorf("width: expected a canvas, got %s", a.Kind)
			}
			return value.Int(int64(a.Canvas.Width())), nil
		}), true
	case "functions/height":
		return curry1(func(a value.Value) (value.Value, error) {
			if a.Kind != value.KindCanvas {
				return value.Value{}, fmt.Errorf("height: expected a canvas, got %s", a.Kind)
			}
			return value.Int(int64(a.Canvas.Height())), nil
		}), true
	case "functions/read":
		return curry3(func(c, xv, yv value.Value) (value.Value, error) {
			if c.Kind != value.KindCanvas {
				return value.Value{}, fmt.Errorf("read: expected a canvas, got %s", c.Kind)
			}
			px, err := asPixelCoord(xv, "x")
			if err != nil {
				return value.Value{}, err
			}
			py, err := asPixelCoord(yv, "y")
			if err != nil {
				return value.Value{}, err
			}
			pix, err := c.Canvas.Read(px, py)
			if err != nil {
				return value.Value{}, err
			}
			return value.Int(int64(pix)), nil
		}), true
	case "functions/write":
		return curry4(func(c, xv, yv, vv value.Value) (value.Value, error) {
			if c.Kind != value.KindCanvas {
				return value.Value{}, fmt.Errorf("write: expected a canvas, got %s", c.Kind)
			}
			px, err := asPixelCoord(xv, "x")
			if err != nil {
				return value.Value{}, err
			}
			py, err := asPixelCoord(yv, "y")
			if err != nil {
				return value.Value{}, err
			}
			pv, err := asPixelCoord(vv, "value")
			if err != nil {
				return value.Value{}, err
			}
			next, err := c.Canvas.Write(px, py, pv)
			if err != nil {
				return value.Value{}, err
			}
			return value.FromCanvas(next), nil
		}), true

	case "extensions/cos":
		return curry1(unaryFloat(math.Cos)), true
	case "extensions/sin":
		return curry1(unaryFloat(math.Sin)), true
	case "extensions/atan2":
		return curry2(func(yv, xv value.Value) (value.Value, error) {
			if !yv.IsNumeric() || !xv.IsNumeric() {
				return value.Value{}, fmt.Errorf("atan2: expected numbers")
			}
			return value.Float(math.Atan2(yv.AsFloat(), xv.AsFloat())), nil
		}), true
	}
	return value.Value{}, false
}

func asPixelCoord(v value.Value, name string) (int, error) {
	if v.Kind != value.KindInt {
		return 0, fmt.Errorf("%s: expected an int, got %s", name, v.Kind)
	}
	return int(v.Int), nil
}

func unaryFloat(f func(float64) float64) func(value.Value) (value.Value, error) {
	return func(a value.Value) (value.Value, error) {
		if !a.IsNumeric() {
			return value.Value{}, fmt.Errorf("expected a number, got %s", a.Kind)
		}
		return value.Float(f(a.AsFloat())), nil
	}
}

// arithmetic builds a binary numeric op: integer result when both operands
// are Int, float result (widening) otherwise.
func arithmetic(intOp func(a, b int64) int64, floatOp func(a, b float64) float64) func(a, b value.Value) (value.Value, error) {
	return func(a, b value.Value) (value.Value, error) {
		if !a.IsNumeric() || !b.IsNumeric() {
			return value.Value{}, fmt.Errorf("arithmetic: expected numbers, got %s and %s", a.Kind, b.Kind)
		}
		if a.Kind == value.KindInt && b.Kind == value.KindInt {
			return value.Int(intOp(a.Int, b.Int)), nil
		}
		return value.Float(floatOp(a.AsFloat(), b.AsFloat())), nil
	}
}

func divide(a, b value.Value) (value.Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return value.Value{}, fmt.Errorf("div: expected numbers, got %s and %s", a.Kind, b.Kind)
	}
	if a.Kind == value.KindFloat || b.Kind == value.KindFloat {
		return value.Float(a.AsFloat() / b.AsFloat()), nil
	}
	if b.Int == 0 {
		return value.Value{}, fmt.Errorf("div: division by zero")
	}
	return value.Int(floorDivInt(a.Int, b.Int)), nil
}

// floorDivInt implements floor division for two integers (rounds toward
// negative infinity, unlike Go's truncating /).
func floorDivInt(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorModInt implements floor modulo: the result always has the same sign
// as b, matching Python's % instead of Go's truncating %.
func floorModInt(a, b int64) int64 {
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}

// floorModFloat is floorModInt's float counterpart, built on math.Mod the
// same way floorDivInt is built on Go's truncating /.
func floorModFloat(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

// compareEq returns == (wantEqual=true) or != (wantEqual=false), widening
// numeric operands and otherwise comparing same-kind values.
func compareEq(wantEqual bool) func(a, b value.Value) (value.Value, error) {
	return func(a, b value.Value) (value.Value, error) {
		eq, err := valuesEqual(a, b)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(eq == wantEqual), nil
	}
}

func valuesEqual(a, b value.Value) (bool, error) {
	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat() == b.AsFloat(), nil
	}
	if a.Kind != b.Kind {
		return false, nil
	}
	switch a.Kind {
	case value.KindBool:
		return a.Bool == b.Bool, nil
	case value.KindUnit:
		return true, nil
	default:
		return false, fmt.Errorf("equal: cannot compare %s values", a.Kind)
	}
}

// compareOrd builds a strict/ordering comparison from a sign-comparator
// over numeric operands (greater/less and their -or-equal variants; equal
// and unequal use compareEq).
func compareOrd(pred func(cmp int) bool) func(a, b value.Value) (value.Value, error) {
	return func(a, b value.Value) (value.Value, error) {
		if !a.IsNumeric() || !b.IsNumeric() {
			return value.Value{}, fmt.Errorf("comparison: expected numbers, got %s and %s", a.Kind, b.Kind)
		}
		af, bf := a.AsFloat(), b.AsFloat()
		cmp := 0
		switch {
		case af < bf:
			cmp = -1
		case af > bf:
			cmp = 1
		}
		return value.Bool(pred(cmp)), nil
	}
}

func curry1(f func(value.Value) (value.Value, error)) value.Value {
	return value.FromFunc(f)
}

func curry2(f func(a, b value.Value) (value.Value, error)) value.Value {
	return value.FromFunc(func(a value.Value) (value.Value, error) {
		return value.FromFunc(func(b value.Value) (value.Value, error) {
			return f(a, b)
		}), nil
	})
}

func curry3(f func(a, b, c value.Value) (value.Value, error)) value.Value {
	return value.FromFunc(func(a value.Value) (value.Value, error) {
		return value.FromFunc(func(b value.Value) (value.Value, error) {
			return value.FromFunc(func(c value.Value) (value.Value, error) {
				return f(a, b, c)
			}), nil
		}), nil
	})
}

func curry4(f func(a, b, c, d value.Value) (value.Value, error)) value.Value {
	return value.FromFunc(func(a value.Value) (value.Value, error) {
		return value.FromFunc(func(b value.Value) (value.Value, error) {
			return value.FromFunc(func(c value.Value) (value.Value, error) {
				return value.FromFunc(func(d value.Value) (value.Value, error) {
					return f(a, b, c, d)
				}), nil
			}), nil
		}), nil
	})
}
