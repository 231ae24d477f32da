package omr

import "testing"

// rowSource inks whole raster rows listed in inked.
type rowSource struct {
	inked map[int]bool
}

func (s rowSource) Foreground(x, y int) bool {
	return s.inked[y]
}

func TestVerticalCoreGap(t *testing.T) {
	// Rows 0-2 inked, 3-6 white, 7 inked, 8-9 white: largest gap is 4
	src := rowSource{inked: map[int]bool{0: true, 1: true, 2: true, 7: true}}

	if got := verticalCoreGap(src, 2, 4, 0, 9); got != 4 {
		t.Errorf("gap = %d, want 4", got)
	}
}

func TestVerticalCoreGapSolid(t *testing.T) {
	inked := map[int]bool{}
	for y := 0; y <= 9; y++ {
		inked[y] = true
	}

	if got := verticalCoreGap(rowSource{inked: inked}, 0, 0, 0, 9); got != 0 {
		t.Errorf("gap = %d, want 0", got)
	}
}

func TestVerticalCoreGapSwappedProbes(t *testing.T) {
	// One inked column at x=3 splits the area: any row is inked as long as
	// the probes cover x=3, whatever their order.
	src := columnSource{heights: []int{0, 0, 0, 10, 0}, yTop: 0}

	if got := verticalCoreGap(src, 4, 2, 0, 9); got != 0 {
		t.Errorf("gap = %d, want 0", got)
	}
}
