package canvas

import "testing"

func TestReadWriteRoundTrip(t *testing.T) {
	data := [][]int{
		{0, 0},
		{0, 0},
	}
	c := New(2, 2, data, 3, 4, true)

	if x, y, ok := c.Position(); !ok || x != 3 || y != 4 {
		t.Fatalf("Position() = %d, %d, %v, want 3, 4, true", x, y, ok)
	}

	next, err := c.Write(1, 1, 1)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, _, ok := next.Position(); ok {
		t.Error("a canvas returned by Write should have no discovery position")
	}
	v, err := next.Read(1, 1)
	if err != nil || v != 1 {
		t.Fatalf("Read(1,1) after Write = %d, %v, want 1, nil", v, err)
	}

	// The original canvas must be untouched (functional update).
	v, err = c.Read(1, 1)
	if err != nil || v != 0 {
		t.Fatalf("original canvas mutated by Write: Read(1,1) = %d, %v, want 0, nil", v, err)
	}
}

func TestReadWriteOutOfBounds(t *testing.T) {
	c := New(2, 2, [][]int{{0, 0}, {0, 0}}, 0, 0, false)
	if _, err := c.Read(5, 5); err == nil {
		t.Error("expected an error reading out of bounds")
	}
	if _, err := c.Write(-1, 0, 1); err == nil {
		t.Error("expected an error writing out of bounds")
	}
}
