package omr

import (
	"math"
	"testing"
)

func TestComputeDetectionStatsEmpty(t *testing.T) {
	values := make([]int, 16)
	sp := newTestProjector(t, values, testParams(5, 3, 1, 2, 3, 6, 0))

	stats := ComputeDetectionStats(sp)
	if stats.PeakCount != 0 || stats.MeanWidth != 0 || stats.MeanGrade != 0 {
		t.Errorf("unexpected stats for empty projector: %+v", stats)
	}
}

func TestComputeDetectionStats(t *testing.T) {
	values := make([]int, 32)
	sp := newTestProjector(t, values, testParams(5, 3, 1, 2, 3, 6, 0))
	sp.peaks = []*StaffPeak{
		NewStaffPeak(sp.staff, 0, 7, 2, 3, NewBarImpacts(1, 1, 1, 1)),    // width 2, grade 1
		NewStaffPeak(sp.staff, 0, 7, 10, 13, NewBarImpacts(0, 0, 1, 1)),  // width 4, grade 0.5
	}
	sp.allBlanks = []Blank{{Start: 0, Stop: 1}}

	stats := ComputeDetectionStats(sp)

	if stats.PeakCount != 2 || stats.BlankCount != 1 {
		t.Errorf("counts = (%d,%d), want (2,1)", stats.PeakCount, stats.BlankCount)
	}
	if math.Abs(stats.MeanWidth-3) > 1e-9 {
		t.Errorf("MeanWidth = %f, want 3", stats.MeanWidth)
	}
	if math.Abs(stats.MeanGrade-0.75) > 1e-9 {
		t.Errorf("MeanGrade = %f, want 0.75", stats.MeanGrade)
	}
	if stats.MinGrade != 0.5 || stats.MaxGrade != 1 {
		t.Errorf("grade range = [%f,%f], want [0.5,1]", stats.MinGrade, stats.MaxGrade)
	}
}

func TestComputeDetectionStatsSinglePeak(t *testing.T) {
	values := make([]int, 16)
	sp := newTestProjector(t, values, testParams(5, 3, 1, 2, 3, 6, 0))
	sp.peaks = []*StaffPeak{
		NewStaffPeak(sp.staff, 0, 7, 2, 3, NewBarImpacts(1, 1, 1, 1)),
	}

	stats := ComputeDetectionStats(sp)
	if stats.StdWidth != 0 || stats.StdGrade != 0 {
		t.Errorf("single-sample stddev must be 0, got (%f,%f)", stats.StdWidth, stats.StdGrade)
	}
}
