package omr

import (
	"fmt"
	"image"
)

// PeakAttribute is a boolean tag attached to a peak. Attributes are
// independent; a peak carries a set of them.
type PeakAttribute uint8

const (
	// AttrBrace marks a peak detected as a brace portion.
	AttrBrace PeakAttribute = 1 << iota
	// AttrStaffLeftEnd marks the peak defining the staff left end.
	AttrStaffLeftEnd
	// AttrStaffRightEnd marks the peak defining the staff right end.
	AttrStaffRightEnd
)

// BarImpacts records the four independent quality components of a bar peak.
// Each is normalized into [0,1].
type BarImpacts struct {
	// Core rates the peak's cumul height against the theoretical staff height.
	Core float64
	// Gap rates the absence of vertical white gaps within the peak core.
	Gap float64
	// Start rates the steepness of the left edge derivative.
	Start float64
	// Stop rates the steepness of the right edge derivative.
	Stop float64
}

// clamp01 bounds an impact into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NewBarImpacts builds an impact record, clamping each component into [0,1].
func NewBarImpacts(core, gap, start, stop float64) BarImpacts {
	return BarImpacts{
		Core:  clamp01(core),
		Gap:   clamp01(gap),
		Start: clamp01(start),
		Stop:  clamp01(stop),
	}
}

// Grade combines the four impacts into one scalar in [0,1].
// All components weigh equally.
func (im BarImpacts) Grade() float64 {
	return (im.Core + im.Gap + im.Start + im.Stop) / 4
}

// StaffPeak is a peak in the staff projection: a candidate bar line, bracket
// or brace portion. Peaks are created only by the projector; attribute flags
// may be set later by the downstream classifier.
type StaffPeak struct {
	staff *Staff

	// Top and Bottom ordinates, taken on the staff's first and last lines at
	// the peak's horizontal midpoint.
	top    int
	bottom int

	// Inclusive abscissa range.
	start int
	stop  int

	attrs   PeakAttribute
	impacts BarImpacts
	graded  bool

	deskewedCenter Point2D
}

// NewStaffPeak creates a peak for the given staff and bounds with its quality
// record.
func NewStaffPeak(staff *Staff, top, bottom, start, stop int, impacts BarImpacts) *StaffPeak {
	return &StaffPeak{
		staff:   staff,
		top:     top,
		bottom:  bottom,
		start:   start,
		stop:    stop,
		impacts: impacts,
		graded:  true,
	}
}

// newBracePeak creates a brace peak, which carries no bar impact record.
func newBracePeak(staff *Staff, top, bottom, start, stop int) *StaffPeak {
	p := &StaffPeak{staff: staff, top: top, bottom: bottom, start: start, stop: stop}
	p.Set(AttrBrace)
	return p
}

// Staff reports the owning staff.
func (p *StaffPeak) Staff() *Staff { return p.staff }

// Start reports the first abscissa of the peak.
func (p *StaffPeak) Start() int { return p.start }

// Stop reports the last abscissa of the peak.
func (p *StaffPeak) Stop() int { return p.stop }

// Width reports the peak column count.
func (p *StaffPeak) Width() int { return p.stop - p.start + 1 }

// Mid reports the peak's horizontal midpoint.
func (p *StaffPeak) Mid() int { return (p.start + p.stop) / 2 }

// Top reports the peak top ordinate.
func (p *StaffPeak) Top() int { return p.top }

// Bottom reports the peak bottom ordinate.
func (p *StaffPeak) Bottom() int { return p.bottom }

// Bounds reports the peak bounding box.
func (p *StaffPeak) Bounds() image.Rectangle {
	return image.Rect(p.start, p.top, p.stop+1, p.bottom+1)
}

// Impacts reports the peak quality record.
func (p *StaffPeak) Impacts() BarImpacts { return p.impacts }

// Grade reports the combined quality grade in [0,1]. Brace peaks, which have
// no bar impact record, report 0.
func (p *StaffPeak) Grade() float64 {
	if !p.graded {
		return 0
	}
	return p.impacts.Grade()
}

// Set adds an attribute flag.
func (p *StaffPeak) Set(attr PeakAttribute) {
	p.attrs |= attr
}

// IsSet reports whether the given attribute flag is present.
func (p *StaffPeak) IsSet(attr PeakAttribute) bool {
	return p.attrs&attr != 0
}

// IsBrace reports whether the peak was detected as a brace portion.
func (p *StaffPeak) IsBrace() bool {
	return p.IsSet(AttrBrace)
}

// SetStaffEnd flags this peak as defining the staff end on the given side.
func (p *StaffPeak) SetStaffEnd(side HorizontalSide) {
	if side == Left {
		p.Set(AttrStaffLeftEnd)
	} else {
		p.Set(AttrStaffRightEnd)
	}
}

// IsStaffEnd reports whether the peak defines the staff end on the given side.
func (p *StaffPeak) IsStaffEnd(side HorizontalSide) bool {
	if side == Left {
		return p.IsSet(AttrStaffLeftEnd)
	}
	return p.IsSet(AttrStaffRightEnd)
}

// ComputeDeskewedCenter records the peak center in the sheet's deskewed axes.
func (p *StaffPeak) ComputeDeskewedCenter(skew *Skew) {
	center := Point2D{
		X: float64(p.start+p.stop) / 2,
		Y: float64(p.top+p.bottom) / 2,
	}
	p.deskewedCenter = skew.Deskewed(center)
}

// DeskewedCenter reports the peak center in deskewed axes.
func (p *StaffPeak) DeskewedCenter() Point2D { return p.deskewedCenter }

func (p *StaffPeak) String() string {
	kind := "bar"
	if p.IsBrace() {
		kind = "brace"
	}
	return fmt.Sprintf("%sPeak(%d-%d) grade:%.2f", kind, p.start, p.stop, p.Grade())
}
