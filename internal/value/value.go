// Package value defines the tagged-union runtime value that flows through
// the tile-grid evaluator: integers, floats, booleans, unit, canvases, pairs,
// and curried functions.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a Value's active variant.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindUnit
	KindCanvas
	KindFunction
	KindPair
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindUnit:
		return "unit"
	case KindCanvas:
		return "canvas"
	case KindFunction:
		return "function"
	case KindPair:
		return "pair"
	default:
		return "unknown"
	}
}

// Func is a curried primitive or user-defined function: apply one argument,
// get back a Value (often another Func, for arities > 1).
type Func func(arg Value) (Value, error)

// Value is the runtime value produced and consumed by the evaluator. Only
// the field matching Kind is meaningful; Go has no sum types, so this is the
// idiomatic stand-in (tag + the fields that could be live).
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	Bool   bool
	Canvas Canvas // implemented by package canvas; kept as an interface to avoid an import cycle
	Fn     Func
	Pair   [2]*Value
}

// Canvas is implemented in package canvas; Value references it through this
// narrow interface so that package value never imports package canvas.
type Canvas interface {
	Width() int
	Height() int
	Read(x, y int) (int, error)
	Write(x, y, v int) (Canvas, error)
	Position() (x, y int, ok bool)
}

func Int(v int64) Value      { return Value{Kind: KindInt, Int: v} }
func Float(v float64) Value  { return Value{Kind: KindFloat, Float: v} }
func Bool(v bool) Value      { return Value{Kind: KindBool, Bool: v} }
func Unit() Value            { return Value{Kind: KindUnit} }
func FromCanvas(c Canvas) Value { return Value{Kind: KindCanvas, Canvas: c} }
func FromFunc(fn Func) Value { return Value{Kind: KindFunction, Fn: fn} }
func Pair(a, b Value) Value  { return Value{Kind: KindPair, Pair: [2]*Value{&a, &b}} }

// IsNumeric reports whether v is an Int or a Float.
func (v Value) IsNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// AsFloat widens an Int or Float value to float64. Panics are not used;
// callers must check IsNumeric first.
func (v Value) AsFloat() float64 {
	if v.Kind == KindFloat {
		return v.Float
	}
	return float64(v.Int)
}

// Truthy implements the primitive truthiness used by `and`/`or`. Truthiness
// is restricted to booleans rather than treating numbers or canvases as
// truthy or falsy (see DESIGN.md).
func (v Value) Truthy() (bool, error) {
	if v.Kind != KindBool {
		return false, fmt.Errorf("truthiness requires a bool, got %s", v.Kind)
	}
	return v.Bool, nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return formatFloat(v.Float)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindUnit:
		return "()"
	case KindCanvas:
		return fmt.Sprintf("canvas(%dx%d)", v.Canvas.Width(), v.Canvas.Height())
	case KindFunction:
		return "<function>"
	case KindPair:
		return fmt.Sprintf("(%s, %s)", v.Pair[0], v.Pair[1])
	default:
		return "<unknown>"
	}
}

// formatFloat renders a float in plain decimal notation, always with a
// fractional part and never in exponential form, at any magnitude. The number
// tiles this language can paint have no glyph for 'e' or '+'.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
