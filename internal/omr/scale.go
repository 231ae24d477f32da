package omr

import "math"

// Scale captures the sheet's natural length units. Interline is the nominal
// vertical distance in pixels between two adjacent staff lines; MaxForeRun is
// the maximum typical vertical run length of foreground pixels in a staff
// line (both come from an upstream calibration step).
type Scale struct {
	Interline  int
	MaxForeRun int
}

// ToPixels converts an interline-based fraction to a pixel count.
func (s Scale) ToPixels(frac float64) int {
	return int(math.Round(frac * float64(s.Interline)))
}

// StaffHeight reports the theoretical staff height, assuming a 5-line staff.
func (s Scale) StaffHeight() int {
	return 4 * s.Interline
}
