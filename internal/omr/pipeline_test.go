package omr

import (
	"testing"
)

// scoreSource draws a synthetic one-staff score: five one-pixel staff lines
// plus full-height bar lines at the given abscissae.
type scoreSource struct {
	lineYs              []int
	lineLeft, lineRight int
	barXs               map[int]bool
	barTop, barBottom   int
}

func (s scoreSource) Foreground(x, y int) bool {
	if s.barXs[x] && y >= s.barTop && y <= s.barBottom {
		return true
	}
	if x < s.lineLeft || x > s.lineRight {
		return false
	}
	for _, ly := range s.lineYs {
		if y == ly {
			return true
		}
	}
	return false
}

// newScoreFixture builds a 100-column sheet with staff lines on x 10..90 and
// bar lines at x 50-51 (mid-staff) and x 90-91 (right end).
func newScoreFixture() (*Sheet, *Staff, ScaleParams) {
	lineYs := []int{20, 24, 28, 32, 36}
	source := scoreSource{
		lineYs:    lineYs,
		lineLeft:  10,
		lineRight: 90,
		barXs:     map[int]bool{50: true, 51: true, 90: true, 91: true},
		barTop:    20,
		barBottom: 36,
	}

	sheet := &Sheet{
		ID:     "synthetic",
		Width:  100,
		Height: 50,
		Source: source,
		Scale:  Scale{Interline: 4, MaxForeRun: 1},
	}

	lines := make([]StaffLine, len(lineYs))
	for i, y := range lineYs {
		lines[i] = StraightLine{Y: y, Thick: 1}
	}
	staff := NewStaff(1, lines, 10, 90)

	return sheet, staff, NewScaleParams(sheet.Scale, nil)
}

func TestProcessSyntheticScore(t *testing.T) {
	sheet, staff, params := newScoreFixture()
	graph := NewMemoryPeakGraph()
	sp := NewStaffProjector(sheet, staff, params, graph)

	sp.Process()

	peaks := sp.Peaks()
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d: %v", len(peaks), peaks)
	}
	if peaks[0].Start() != 50 || peaks[0].Stop() != 51 {
		t.Errorf("expected first peak [50,51], got [%d,%d]", peaks[0].Start(), peaks[0].Stop())
	}
	if peaks[1].Start() != 90 || peaks[1].Stop() != 91 {
		t.Errorf("expected second peak [90,91], got [%d,%d]", peaks[1].Start(), peaks[1].Stop())
	}
	for _, p := range peaks {
		if g := p.Grade(); g < sp.params.MinGrade || g > 1 {
			t.Errorf("peak %v grade %f outside [minGrade,1]", p, g)
		}
		if p.Top() != 20 || p.Bottom() != 36 {
			t.Errorf("peak %v ordinates [%d,%d], want [20,36]", p, p.Top(), p.Bottom())
		}
	}
	if graph.Len() != 2 {
		t.Errorf("graph has %d vertices, want 2", graph.Len())
	}

	// Blanks surround the staff
	blanks := sp.Blanks()
	if len(blanks) < 2 {
		t.Fatalf("expected blanks on both sides, got %v", blanks)
	}
	if blanks[0].Start != 0 || blanks[0].Stop != 9 {
		t.Errorf("expected left blank (0-9), got %v", blanks[0])
	}
}

func TestRefineRightEndSyntheticScore(t *testing.T) {
	sheet, staff, params := newScoreFixture()
	sp := NewStaffProjector(sheet, staff, params, NewMemoryPeakGraph())

	sp.Process()
	sp.RefineRightEnd()

	// The ending bar at 90-91 sits at the staff end: its mid becomes the
	// right abscissa and the peak gets the staff-end flag.
	if got := staff.Abscissa(Right); got != 90 {
		t.Errorf("right abscissa = %d, want 90", got)
	}
	peaks := sp.Peaks()
	last := peaks[len(peaks)-1]
	if !last.IsStaffEnd(Right) {
		t.Error("ending peak not flagged as staff right end")
	}
}

func TestSeriesSnapshot(t *testing.T) {
	sheet, staff, params := newScoreFixture()
	sp := NewStaffProjector(sheet, staff, params, NewMemoryPeakGraph())

	if s := sp.Series(); s != nil {
		t.Fatal("Series() must be nil before Process")
	}

	sp.Process()
	s := sp.Series()
	if s == nil {
		t.Fatal("Series() is nil after Process")
	}

	if len(s.Values) != sheet.Width || len(s.Derivatives) != sheet.Width {
		t.Errorf("series lengths (%d,%d), want %d", len(s.Values), len(s.Derivatives), sheet.Width)
	}
	if s.Values[50] != 17 || s.Values[30] != 5 {
		t.Errorf("unexpected cumul values: bar=%d line=%d", s.Values[50], s.Values[30])
	}
	if s.BarThreshold != 10 || s.StaffHeight != 16 {
		t.Errorf("thresholds bar=%d height=%d, want 10/16", s.BarThreshold, s.StaffHeight)
	}
	if len(s.Peaks) != 2 {
		t.Errorf("expected 2 peak spans, got %v", s.Peaks)
	}

	// Snapshot is detached from the projector
	s.Values[50] = -1
	if sp.Projection().Value(50) != 17 {
		t.Error("mutating the snapshot leaked into the projection")
	}
}
