package numio

import "testing"

func gridFromRows(rows ...[]string) *stringGrid {
	return &stringGrid{rows: rows}
}

func TestReadSliderInterpolatesAtMidpoint(t *testing.T) {
	top := []string{"functions/0", "", "", "", "functions/1", "functions/0"}
	slider := []string{"functions/slider_l", "wire_we", "functions/slider_m", "wire_we", "functions/slider_r"}
	g := gridFromRows(top, slider)

	v, err := ReadSlider(g, 0, 1)
	if err != nil {
		t.Fatalf("ReadSlider: %v", err)
	}
	if v.AsFloat() != 5.0 {
		t.Errorf("ReadSlider midpoint = %v, want 5.0", v.AsFloat())
	}
}

func TestReadSliderAtRightEndpoint(t *testing.T) {
	top := []string{"functions/0", "", "", "functions/1", "functions/0"}
	slider := []string{"functions/slider_l", "wire_we", "functions/slider_m", "functions/slider_r"}
	g := gridFromRows(top, slider)

	v, err := ReadSlider(g, 0, 1)
	if err != nil {
		t.Fatalf("ReadSlider: %v", err)
	}
	if v.AsFloat() != 10.0 {
		t.Errorf("ReadSlider at right endpoint = %v, want 10.0", v.AsFloat())
	}
}

func TestReadSliderWithNoTrackReadsLeftEndpoint(t *testing.T) {
	top := []string{"functions/0", "", "functions/1"}
	slider := []string{"functions/slider_l", "functions/slider_m", "functions/slider_r"}
	g := gridFromRows(top, slider)

	v, err := ReadSlider(g, 0, 1)
	if err != nil {
		t.Fatalf("ReadSlider: %v", err)
	}
	if v.AsFloat() != 0.0 {
		t.Errorf("ReadSlider with knob directly between the endpoints = %v, want 0.0 (no NaN)", v.AsFloat())
	}
}

func TestReadSliderMissingKnob(t *testing.T) {
	top := []string{"functions/0", "functions/1", "functions/0"}
	slider := []string{"functions/slider_l", "wire_we", "functions/slider_r"}
	g := gridFromRows(top, slider)

	if _, err := ReadSlider(g, 0, 1); err == nil {
		t.Error("ReadSlider should fail when no slider_m knob is present")
	}
}
