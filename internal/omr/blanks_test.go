package omr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindBlanks(t *testing.T) {
	p := NewProjection([]int{0, 1, 5, 5, 0, 0, 0, 5, 1})

	got := findBlanks(p, 1)
	want := []Blank{{Start: 0, Stop: 1}, {Start: 4, Stop: 6}, {Start: 8, Stop: 8}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blanks mismatch (-want +got):\n%s", diff)
	}
}

func TestFindBlanksFlushesTrailingRun(t *testing.T) {
	p := NewProjection([]int{5, 0, 0})

	got := findBlanks(p, 0)
	want := []Blank{{Start: 1, Stop: 2}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blanks mismatch (-want +got):\n%s", diff)
	}
}

func TestFindBlanksNoBlank(t *testing.T) {
	p := NewProjection([]int{5, 5, 5})

	if got := findBlanks(p, 1); len(got) != 0 {
		t.Errorf("expected no blanks, got %v", got)
	}
}

func TestFindBlanksIdempotent(t *testing.T) {
	p := NewProjection([]int{0, 4, 0, 0, 7, 7, 0})

	first := findBlanks(p, 1)
	second := findBlanks(p, 1)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-running on an unchanged projection differed (-first +second):\n%s", diff)
	}
}

func TestBlanksAscendingNonOverlapping(t *testing.T) {
	p := NewProjection([]int{0, 9, 0, 9, 0, 9, 0, 0, 9, 0})

	blanks := findBlanks(p, 0)
	for i := 1; i < len(blanks); i++ {
		if blanks[i-1].Stop >= blanks[i].Start {
			t.Errorf("blanks %v and %v overlap or are unordered", blanks[i-1], blanks[i])
		}
	}
}

func TestBlankWidth(t *testing.T) {
	b := Blank{Start: 3, Stop: 7}
	if got := b.Width(); got != 5 {
		t.Errorf("Width() = %d, want 5", got)
	}
	if got := b.String(); got != "Blank(3-7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestSelectBlankWidePreferredExtremeFallback(t *testing.T) {
	values := make([]int, 40)
	sp := newTestProjector(t, values, testParams(5, 3, 1, 2, 3, 6, 0))
	sp.staff.SetAbscissa(Left, 15)
	sp.staff.SetAbscissa(Right, 25)
	sp.allBlanks = []Blank{
		{Start: 0, Stop: 1},   // extreme left, narrow
		{Start: 8, Stop: 12},  // wide, nearest left
		{Start: 28, Stop: 28}, // narrow right
		{Start: 33, Stop: 39}, // wide right
	}

	// The nearest wide-enough blank wins on each side
	sp.params.MinWideBlankWidth = 4
	sp.selectEndingBlanks()
	if got := sp.endingBlanks[Left]; got == nil || got.Start != 8 {
		t.Errorf("expected wide left blank (8-12), got %v", got)
	}
	if got := sp.endingBlanks[Right]; got == nil || got.Start != 33 {
		t.Errorf("expected wide right blank (33-39), got %v", got)
	}

	// Without any wide-enough blank, fall back to the extreme one per side
	sp.params.MinWideBlankWidth = 20
	sp.selectEndingBlanks()
	if got := sp.endingBlanks[Left]; got == nil || got.Start != 0 {
		t.Errorf("expected extreme left blank (0-1), got %v", got)
	}
	if got := sp.endingBlanks[Right]; got == nil || got.Start != 33 {
		t.Errorf("expected extreme right blank (33-39), got %v", got)
	}
}
