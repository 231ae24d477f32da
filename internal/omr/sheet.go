package omr

import "math"

// PixelSource exposes the sheet's binarized raster. Foreground reports true
// for black (ink) pixels. Coordinates outside the raster report false.
type PixelSource interface {
	Foreground(x, y int) bool
}

// Point2D is a point with sub-pixel precision, used for deskewed centers.
type Point2D struct {
	X, Y float64
}

// Skew models the global rotation of the sheet. Deskewed positions are used
// when comparing peaks across staves.
type Skew struct {
	// Angle is the measured rotation in radians (positive = clockwise page).
	Angle float64
}

// Deskewed rotates a point back into the sheet's ideal axes.
func (s *Skew) Deskewed(p Point2D) Point2D {
	if s == nil || s.Angle == 0 {
		return p
	}
	cos := math.Cos(-s.Angle)
	sin := math.Sin(-s.Angle)
	return Point2D{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Sheet gathers the per-page collaborators the projector needs: raster
// dimensions, the binarized pixel source, the calibrated scale and the
// measured skew.
type Sheet struct {
	ID     string
	Width  int
	Height int
	Source PixelSource
	Scale  Scale
	Skew   *Skew
}

// XClamp clamps an abscissa within the sheet raster, [0..Width-1].
func (sh *Sheet) XClamp(x int) int {
	if x < 0 {
		return 0
	}
	if x > sh.Width-1 {
		return sh.Width - 1
	}
	return x
}
