package omr

import "fmt"

// Blank is an abscissa region where no staff lines are detected, and thus a
// possible end of staff. Start and Stop are inclusive; every column within
// the region has a projection value at or below the blank threshold and the
// region cannot be extended on either side.
type Blank struct {
	Start int
	Stop  int
}

// Width reports the column count of the blank region.
func (b Blank) Width() int {
	return b.Stop - b.Start + 1
}

func (b Blank) String() string {
	return fmt.Sprintf("Blank(%d-%d)", b.Start, b.Stop)
}

// findBlanks scans the whole projection for maximal runs of columns at or
// below maxValue. The returned list is ascending and non-overlapping.
func findBlanks(projection *Projection, maxValue int) []Blank {
	var blanks []Blank
	start := -1
	stop := -1

	for x := 0; x < projection.Width(); x++ {
		if projection.Value(x) <= maxValue {
			// No line detected
			if start == -1 {
				start = x
			}
			stop = x
		} else if start != -1 {
			blanks = append(blanks, Blank{Start: start, Stop: stop})
			start = -1
		}
	}

	// Finish ongoing region if any
	if start != -1 {
		blanks = append(blanks, Blank{Start: start, Stop: stop})
	}

	return blanks
}
