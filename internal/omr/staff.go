package omr

// HorizontalSide selects the left or right end of a staff.
type HorizontalSide int

const (
	// Left is the staff's starting side.
	Left HorizontalSide = iota
	// Right is the staff's ending side.
	Right
)

func (s HorizontalSide) String() string {
	if s == Left {
		return "LEFT"
	}
	return "RIGHT"
}

// StaffLine is one horizontal line of a staff, as built by the upstream
// line-detection step.
type StaffLine interface {
	// YAt reports the line ordinate at the given abscissa.
	YAt(x int) int
	// Thickness reports the measured mean thickness of the line.
	Thickness() float64
}

// Staff is one set of parallel lines. Only its geometry is consumed here;
// the abscissa bounds are refined in place by the projector.
type Staff struct {
	ID    int
	lines []StaffLine

	// Current abscissa bound per side, as defined by line detection and
	// later refined from projection data.
	abscissa [2]int
}

// NewStaff creates a staff from its lines, ordered top to bottom, with the
// abscissa bounds reported by line detection.
func NewStaff(id int, lines []StaffLine, left, right int) *Staff {
	st := &Staff{ID: id, lines: lines}
	st.abscissa[Left] = left
	st.abscissa[Right] = right
	return st
}

// Lines reports the staff lines, ordered top to bottom.
func (st *Staff) Lines() []StaffLine {
	return st.lines
}

// FirstLine reports the top staff line.
func (st *Staff) FirstLine() StaffLine {
	return st.lines[0]
}

// LastLine reports the bottom staff line.
func (st *Staff) LastLine() StaffLine {
	return st.lines[len(st.lines)-1]
}

// Abscissa reports the current staff bound on the given side.
func (st *Staff) Abscissa(side HorizontalSide) int {
	return st.abscissa[side]
}

// SetAbscissa updates the staff bound on the given side.
func (st *Staff) SetAbscissa(side HorizontalSide, x int) {
	st.abscissa[side] = x
}

// StraightLine is a horizontal StaffLine at constant ordinate, convenient
// for synthetic sheets and undistorted scores.
type StraightLine struct {
	Y     int
	Thick float64
}

// YAt implements StaffLine.
func (l StraightLine) YAt(int) int { return l.Y }

// Thickness implements StaffLine.
func (l StraightLine) Thickness() float64 { return l.Thick }
