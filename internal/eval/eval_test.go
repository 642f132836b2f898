package eval

import (
	"strings"
	"testing"

	"github.com/pspoerri/tilegrid/internal/tileenv"
	"github.com/pspoerri/tilegrid/internal/value"
)

func TestEvalStraightWireRoutesToLiteral(t *testing.T) {
	tiles, masks := gridFromRows([]string{"functions/5", "wire_we", "wire_we"})
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 1, Cols: 3}, 0)

	v, err := ev.Eval(2, 0, DirW, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Kind != value.KindInt || v.Int != 5 {
		t.Errorf("Eval = %s, want int 5", v)
	}
}

func TestEvalCornerWireBranchesOnArrival(t *testing.T) {
	tiles, masks := gridFromRows(
		[]string{"functions/9", ""},
		[]string{"wire_ne", "functions/4"},
	)
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 2, Cols: 2}, 0)

	v, err := ev.Eval(0, 1, DirW, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval (arriving west): %v", err)
	}
	if v.Int != 9 {
		t.Errorf("Eval arriving west = %s, want 9 (routes north)", v)
	}

	v, err = ev.Eval(0, 1, DirS, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval (arriving south): %v", err)
	}
	if v.Int != 4 {
		t.Errorf("Eval arriving south = %s, want 4 (routes east)", v)
	}
}

func TestEvalJoinAcceptsEitherUpstreamDirection(t *testing.T) {
	tiles, masks := gridFromRows(
		[]string{"functions/2"},
		[]string{"join_nse"},
	)
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 2, Cols: 1}, 0)

	for _, dir := range []Direction{DirN, DirW} {
		v, err := ev.Eval(0, 1, dir, tileenv.Empty())
		if err != nil {
			t.Fatalf("Eval arriving %s: %v", dir, err)
		}
		if v.Int != 2 {
			t.Errorf("Eval arriving %s = %s, want 2", dir, v)
		}
	}

	if _, err := ev.Eval(0, 1, DirE, tileenv.Empty()); err == nil {
		t.Error("join_nse should reject an arrival from the east")
	}
}

func TestEvalBridgePassesEastArrivalThrough(t *testing.T) {
	tiles, masks := gridFromRows([]string{"bridge", "functions/7"})
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 1, Cols: 2}, 0)

	v, err := ev.Eval(0, 0, DirE, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Int != 7 {
		t.Errorf("Eval through bridge = %s, want 7", v)
	}
}

func TestEvalEndCapRejectsOpposingArrival(t *testing.T) {
	tiles, masks := gridFromRows([]string{"end_e", "functions/3"})
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 1, Cols: 2}, 0)

	v, err := ev.Eval(0, 0, DirNone, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Int != 3 {
		t.Errorf("Eval through end_e = %s, want 3", v)
	}

	if _, err := ev.Eval(0, 0, DirW, tileenv.Empty()); err == nil {
		t.Error("end_e should reject an arrival from the west")
	}
}

func TestEvalAppAppliesUnaryPrimitive(t *testing.T) {
	tiles, masks := gridFromRows(
		[]string{"functions/9"},
		[]string{"app"},
		[]string{"functions/floor"},
	)
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 3, Cols: 1}, 0)

	v, err := ev.Eval(0, 1, DirW, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Kind != value.KindInt || v.Int != 9 {
		t.Errorf("floor(9) = %s, want int 9", v)
	}
}

func TestEvalAppRequiresArrivalFromWest(t *testing.T) {
	tiles, masks := gridFromRows(
		[]string{"functions/9"},
		[]string{"app"},
		[]string{"functions/floor"},
	)
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 3, Cols: 1}, 0)

	if _, err := ev.Eval(0, 1, DirN, tileenv.Empty()); err == nil {
		t.Error("app should refuse to evaluate when not entered from the west")
	}
}

// TestEvalLambdaClosureIsReusable checks that the Value returned for a
// lambda tile is a reusable closure: applying it repeatedly re-evaluates
// the body fresh each time rather than caching a stale result.
func TestEvalLambdaClosureIsReusable(t *testing.T) {
	tiles, masks := gridFromRows([]string{"lambda", "wire_we", "functions/9"})
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 1, Cols: 3}, 0)

	fn, err := ev.Eval(0, 0, DirNone, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if fn.Kind != value.KindFunction {
		t.Fatalf("lambda tile evaluated to %s, want a function", fn.Kind)
	}

	for _, arg := range []int64{42, 7} {
		result, err := fn.Fn(value.Int(arg))
		if err != nil {
			t.Fatalf("applying lambda: %v", err)
		}
		if result.Kind != value.KindInt || result.Int != 9 {
			t.Errorf("lambda(%d) = %s, want constant int 9", arg, result)
		}
	}
}

// TestEvalCurriedAppAcrossWireTurn builds a two-argument curried
// application, (add 3) 4, where the outer app's function operand is routed
// through a wire_nw turn (south arrival becomes a west arrival) into a
// nested inner app supplying the primitive and its first argument.
//
//	y=1:        . functions/4
//	y=2: functions/3   app
//	y=3:        app    wire_nw
//	y=4: functions/add  .
func TestEvalCurriedAppAcrossWireTurn(t *testing.T) {
	tiles, masks := gridFromRows(
		[]string{"", ""},
		[]string{"", "functions/4"},
		[]string{"functions/3", "app"},
		[]string{"app", "wire_nw"},
		[]string{"functions/add", ""},
	)
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 5, Cols: 2}, 0)

	v, err := ev.Eval(1, 2, DirW, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Kind != value.KindInt || v.Int != 7 {
		t.Errorf("(add 3) 4 = %s, want int 7", v)
	}
}

// TestEvalStepBudgetStopsAnInfiniteCycle wires a 2x2 ring of corner tiles
// that routes forever, and checks the reduction-step budget halts it.
func TestEvalStepBudgetStopsAnInfiniteCycle(t *testing.T) {
	tiles, masks := gridFromRows(
		[]string{"wire_se", "wire_sw"},
		[]string{"wire_ne", "wire_nw"},
	)
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 2, Cols: 2}, 10)

	_, err := ev.Eval(0, 0, DirW, tileenv.Empty())
	if err == nil {
		t.Fatal("Eval should fail once the step budget is exhausted")
	}
	if !strings.Contains(err.Error(), "reduction budget") {
		t.Errorf("Eval error = %v, want a reduction-budget message", err)
	}
}

func TestEvalOutOfBoundsFails(t *testing.T) {
	tiles, masks := gridFromRows([]string{"functions/1"})
	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 1, Cols: 1}, 0)

	if _, err := ev.Eval(-1, 0, DirNone, tileenv.Empty()); err == nil {
		t.Error("Eval should fail for an out-of-bounds position")
	}
}

// TestEvalRecursiveLambdaTerminatesViaSelfApplicationAndIf builds a lambda
// f(n) = if (equal n 0) then 0 else f(0) and checks that calling it
// terminates after exactly one recursive self-application, the same
// fixed-point mechanism a factorial or Fibonacci definition would rely on
// (self-binding plus a conditional, no explicit recursion combinator).
//
// f sits at (0,0): self@(0,0), param n@(1,0). Its body routes east then
// south down a long corridor to a 3-level curried "if" application built
// from the same wire_nw turning technique as the curried-app test above;
// the condition is a nested "equal n 0" application, and the two branches
// are themselves lambdas fetched through private vertical corridors so
// their reserved binding cells never sit under a path this body actually
// walks. The else branch recurses by fetching f's own self-binding through
// a corridor back to (0,0) and applying it to the literal 0, which always
// satisfies the base case on the next call.
func TestEvalRecursiveLambdaTerminatesViaSelfApplicationAndIf(t *testing.T) {
	cells := map[[2]int]string{
		// f itself.
		{0, 0}: "lambda",

		// Body entry (2,0) snakes east along y=1, then south along x=101,
		// turning west into the outermost "if" app at (100,100).
		{2, 0}: "end_s",
		{2, 1}: "wire_ne",
		{101, 1}: "wire_sw",
		{101, 100}: "wire_nw",

		// if-chain: appIf0 (elseThunk) -> appIf1 (thenThunk) -> appIf2 (cond, ifPrim).
		{100, 100}: "app",
		{100, 101}: "wire_nw",
		{99, 101}:  "app",
		{99, 102}:  "wire_nw",
		{98, 102}:  "app",
		{98, 103}:  "functions/if",
		{98, 101}:  "wire_sw",

		// cond = equal n 0, a 2-level curried chain reached via the wire_sw above.
		{97, 101}: "app",
		{97, 100}: "functions/0",
		{97, 102}: "wire_nw",
		{96, 102}: "app",
		{96, 103}: "functions/equal",
		{96, 101}: "wire_sw",
		{1, 101}:  "wire_ne",

		// thenThunk: a lambda that ignores its argument and returns 0.
		{99, -50}:  "lambda",
		{101, -50}: "functions/0",

		// elseThunk: a lambda whose body reaches an app applying f's self
		// to the literal 0.
		{100, -50}: "lambda",
		{102, -50}: "end_s",
		{102, 150}: "wire_nw",
		{101, 150}: "app",
		{101, 149}: "functions/0",
		{101, 151}: "wire_nw",
		{0, 151}:   "wire_ne",
	}
	vline(cells, 101, 2, 99, "wire_ns")
	hline(cells, 3, 100, 1, "wire_we")
	vline(cells, 100, -49, 99, "wire_ns")
	vline(cells, 99, -49, 100, "wire_ns")
	hline(cells, 2, 95, 101, "wire_we")
	vline(cells, 1, 1, 100, "wire_ns")
	vline(cells, 102, -49, 149, "wire_ns")
	hline(cells, 1, 100, 151, "wire_we")
	vline(cells, 0, 1, 150, "wire_ns")
	// The branch corridors at x=99 and x=100 cross the body's eastward run
	// along y=1; bridges there let both paths through.
	cells[[2]int{99, 1}] = "bridge"
	cells[[2]int{100, 1}] = "bridge"

	ev := NewEvaluator(&sparseGrid{cells: cells}, sparseMaskGrid{}, 1, Dims{}, 0)

	fn, err := ev.Eval(0, 0, DirNone, tileenv.Empty())
	if err != nil {
		t.Fatalf("Eval lambda: %v", err)
	}
	if fn.Kind != value.KindFunction {
		t.Fatalf("f evaluated to %s, want a function", fn.Kind)
	}

	result, err := fn.Fn(value.Int(3))
	if err != nil {
		t.Fatalf("f(3): %v", err)
	}
	if result.Kind != value.KindInt || result.Int != 0 {
		t.Errorf("f(3) = %s, want int 0 (recurses once via self-application, then the if base case)", result)
	}
}

func TestBuildLabelEnvironmentBindsMatchingIcons(t *testing.T) {
	tiles, masks := gridFromRows(
		[]string{"functions/6", "label", "icon"},
		[]string{"unrelated", "", ""},
	)
	masks.set(2, 0, "1")
	masks.set(0, 1, "1")

	ev := NewEvaluator(tiles, masks, 1, Dims{Rows: 2, Cols: 3}, 0)
	env := ev.BuildLabelEnvironment()

	v, ok := env.Lookup(tileenv.Pos{X: 0, Y: 1})
	if !ok {
		t.Fatal("label pre-pass should bind the cell sharing the icon's bitmask")
	}
	if v.Int != 6 {
		t.Errorf("bound value = %s, want int 6", v)
	}

	if _, ok := env.Lookup(tileenv.Pos{X: 1, Y: 1}); ok {
		t.Error("a cell with a non-matching bitmask should not be bound")
	}
}
