package omr

import (
	"image"
	"math"
	"testing"
)

func TestBarImpactsGrade(t *testing.T) {
	im := NewBarImpacts(0.4, 0.6, 1, 1)
	if got := im.Grade(); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Grade() = %f, want 0.75", got)
	}
}

func TestBarImpactsClamping(t *testing.T) {
	im := NewBarImpacts(-0.5, 2.5, 0.5, 1.5)
	if im.Core != 0 || im.Gap != 1 || im.Stop != 1 {
		t.Errorf("impacts not clamped: %+v", im)
	}
	if g := im.Grade(); g < 0 || g > 1 {
		t.Errorf("grade %f outside [0,1]", g)
	}
}

func TestStaffPeakGeometry(t *testing.T) {
	p := NewStaffPeak(nil, 10, 40, 5, 8, NewBarImpacts(1, 1, 1, 1))

	if p.Width() != 4 {
		t.Errorf("Width() = %d, want 4", p.Width())
	}
	if p.Mid() != 6 {
		t.Errorf("Mid() = %d, want 6", p.Mid())
	}
	want := image.Rect(5, 10, 9, 41)
	if got := p.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if g := p.Grade(); g != 1 {
		t.Errorf("Grade() = %f, want 1", g)
	}
}

func TestStaffPeakAttributes(t *testing.T) {
	p := NewStaffPeak(nil, 0, 10, 0, 1, BarImpacts{})

	if p.IsBrace() || p.IsStaffEnd(Left) || p.IsStaffEnd(Right) {
		t.Error("new peak must carry no attributes")
	}

	p.SetStaffEnd(Left)
	if !p.IsStaffEnd(Left) || p.IsStaffEnd(Right) {
		t.Error("left staff-end flag mixed up")
	}

	p.Set(AttrBrace)
	if !p.IsBrace() {
		t.Error("brace flag not set")
	}
	// Flags are independent
	if !p.IsStaffEnd(Left) {
		t.Error("setting one flag cleared another")
	}
}

func TestBracePeakGrade(t *testing.T) {
	p := newBracePeak(nil, 0, 10, 2, 9)
	if !p.IsBrace() {
		t.Error("brace peak missing BRACE attribute")
	}
	if g := p.Grade(); g != 0 {
		t.Errorf("ungraded brace peak reports grade %f, want 0", g)
	}
}

func TestComputeDeskewedCenter(t *testing.T) {
	p := NewStaffPeak(nil, 0, 10, 4, 6, BarImpacts{})

	// Nil skew keeps the raw center
	p.ComputeDeskewedCenter(nil)
	if c := p.DeskewedCenter(); c.X != 5 || c.Y != 5 {
		t.Errorf("center = %+v, want (5,5)", c)
	}

	// A quarter-turn skew swaps axes
	p.ComputeDeskewedCenter(&Skew{Angle: math.Pi / 2})
	c := p.DeskewedCenter()
	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y+5) > 1e-9 {
		t.Errorf("deskewed center = %+v, want (5,-5)", c)
	}
}
