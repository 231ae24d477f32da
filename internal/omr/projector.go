package omr

import (
	"fmt"
	"math"

	"github.com/omrkit/staffscan/internal/monitoring"
)

// peakSide describes one refined (left or right) side of a peak.
type peakSide struct {
	// Precise side abscissa.
	abscissa int
	// Quality based on derivative absolute value.
	grade float64
}

// StaffProjector analyses a staff projection onto the x-axis to retrieve
// bar-line candidates as well as staff start and stop abscissae.
//
// Bar candidates are looked for in the vertical interior of the staff, since
// this is where a bar line must be present; portions outside the staff height
// are much less typical of a bar line. A projection peak can also result from
// a bracket or brace portion, a stem, or plain garbage; sorting those out is
// the duty of the downstream classifier.
//
// Before the projector runs, staves are defined only by their lines, which
// gives a good vertical but a very poor horizontal definition. The projection
// tells which abscissae lie outside the staff range, since the lack of staff
// lines yields a cumul value close to zero.
type StaffProjector struct {
	sheet *Sheet
	staff *Staff

	// Sheet-level scale thresholds; completed per staff during Process.
	scaleParams ScaleParams
	params      Parameters

	// Shared graph of all peaks across staves; vertex-only use here.
	graph PeakGraph

	// Count of cumulated foreground pixels, indexed by abscissa.
	projection *Projection

	// All blank regions found, whatever their width, ascending.
	allBlanks []Blank

	// Selected (wide) ending blank region on each staff side.
	endingBlanks [2]*Blank

	// Sequence of peaks found, ascending by start.
	peaks []*StaffPeak

	// Initial brace peak, if any.
	bracePeak *StaffPeak
}

// NewStaffProjector creates a projector for one staff. The graph is shared
// across all staves of the sheet.
func NewStaffProjector(sheet *Sheet, staff *Staff, scaleParams ScaleParams, graph PeakGraph) *StaffProjector {
	return &StaffProjector{
		sheet:       sheet,
		staff:       staff,
		scaleParams: scaleParams,
		graph:       graph,
	}
}

// Process runs the projection analysis to retrieve the peaks that may
// represent bars.
func (sp *StaffProjector) Process() {
	monitoring.Debugf("StaffProjector analyzing staff#%d", sp.staff.ID)

	// Cumulate pixels for each abscissa
	sp.computeProjection()

	// Adjust thresholds according to actual line thicknesses in this staff
	sp.params = sp.scaleParams.ForStaff(sp.staff)

	// Retrieve all regions without staff lines
	sp.allBlanks = findBlanks(sp.projection, sp.params.BlankThreshold)

	// Select the wide blanks that limit staff search in abscissa
	sp.selectEndingBlanks()

	// Retrieve peaks as bar-line raw candidates
	sp.findPeaks()
}

// Staff reports the underlying staff for this projector.
func (sp *StaffProjector) Staff() *Staff {
	return sp.staff
}

// Projection reports the computed projection, nil before Process.
func (sp *StaffProjector) Projection() *Projection {
	return sp.projection
}

// Params reports the completed per-staff thresholds, zero before Process.
func (sp *StaffProjector) Params() Parameters {
	return sp.params
}

// Blanks reports all blank regions found, ascending.
func (sp *StaffProjector) Blanks() []Blank {
	out := make([]Blank, len(sp.allBlanks))
	copy(out, sp.allBlanks)
	return out
}

// Peaks reports a snapshot of the projector peaks, ascending by start.
func (sp *StaffProjector) Peaks() []*StaffPeak {
	out := make([]*StaffPeak, len(sp.peaks))
	copy(out, sp.peaks)
	return out
}

// BracePeak reports the initial brace peak, if any.
func (sp *StaffProjector) BracePeak() *StaffPeak {
	return sp.bracePeak
}

// SetBracePeak records the initial brace peak.
func (sp *StaffProjector) SetBracePeak(peak *StaffPeak) {
	sp.bracePeak = peak
}

// StartPeakIndex reports the index of the start peak (the one flagged as the
// staff left end), or -1 if none.
func (sp *StaffProjector) StartPeakIndex() int {
	for i, peak := range sp.peaks {
		if peak.IsStaffEnd(Left) {
			return i
		}
	}
	return -1
}

// InsertPeak inserts a new peak right before an existing one. Referring to a
// peak absent from the sequence is a contract violation and fails.
func (sp *StaffProjector) InsertPeak(toInsert, before *StaffPeak) error {
	index := -1
	for i, peak := range sp.peaks {
		if peak == before {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("omr: InsertPeak before a non-existing peak %s", before)
	}

	sp.peaks = append(sp.peaks, nil)
	copy(sp.peaks[index+1:], sp.peaks[index:])
	sp.peaks[index] = toInsert
	sp.graph.AddVertex(toInsert)
	return nil
}

// RemovePeak removes a peak from the sequence, and its vertex from the
// shared graph.
func (sp *StaffProjector) RemovePeak(peak *StaffPeak) {
	for i, p := range sp.peaks {
		if p == peak {
			sp.peaks = append(sp.peaks[:i], sp.peaks[i+1:]...)
			break
		}
	}
	sp.graph.RemoveVertex(peak)
}

// RemovePeaks removes several peaks from the sequence.
func (sp *StaffProjector) RemovePeaks(toRemove []*StaffPeak) {
	for _, peak := range toRemove {
		sp.RemovePeak(peak)
	}
}

// FindBracePeak tries to find a brace-compatible peak on the left side of the
// provided abscissa. It reports nil when no brace shape is found.
func (sp *StaffProjector) FindBracePeak(minLeft, maxRight int) *StaffPeak {
	minValue := sp.params.BraceThreshold
	xMin := minLeft
	if leftBlank := sp.endingBlanks[Left]; leftBlank != nil && leftBlank.Stop > xMin {
		xMin = leftBlank.Stop
	}

	braceStop := -1
	braceStart := -1
	valleyHit := false

	// Browse from right to left: first the valley left of the bar, then the
	// brace plateau if any.
	for x := maxRight; x >= xMin; x-- {
		value := sp.projection.Value(x)

		switch {
		case value >= minValue:
			if !valleyHit {
				continue
			}
			if braceStop == -1 {
				braceStop = x
			}
			braceStart = x
		case !valleyHit:
			valleyHit = true
		case braceStop != -1:
			return sp.createBracePeak(braceStart, braceStop, maxRight)
		}
	}

	return nil
}

// RefineRightEnd tries to use the extreme peak on the staff right side to
// refine the precise abscissa where the staff ends.
//
// When this method is called, the staff sides are defined only by the ends of
// the long-section lines. An extreme peak can be used as abscissa reference
// only if it lies at or beyond the current staff end. If no such peak is
// found, we stop right before the blank region, assuming a measure with no
// outside bar.
func (sp *StaffProjector) RefineRightEnd() {
	linesEnd := sp.staff.Abscissa(Right) // As defined by end of long staff lines
	staffEnd := linesEnd
	var endPeak *StaffPeak
	peakEnd := -1

	// Look for a suitable peak
	if len(sp.peaks) > 0 {
		peak := sp.peaks[len(sp.peaks)-1]

		// Check side position of peak wrt staff, it must be external
		if peak.Mid()-linesEnd >= 0 {
			endPeak = peak
			peakEnd = endPeak.Stop()
			staffEnd = peakEnd
		}
	}

	// Continue and stop at the first small blank region encountered, if any.
	// Keep the additional line chunk if long enough, otherwise use peak mid
	// as staff end.
	blank := sp.selectBlank(Right, staffEnd, sp.params.MinSmallBlankWidth)

	if blank == nil {
		monitoring.Logf("Staff#%d no clear end on RIGHT", sp.staff.ID)
		return
	}

	x := blank.Start - 1

	if endPeak == nil {
		monitoring.Debugf("Staff#%d RIGHT set at blank %d (vs %d)", sp.staff.ID, x, linesEnd)
		sp.staff.SetAbscissa(Right, x)
		return
	}

	if x-peakEnd > sp.params.MaxBarToLinesRightEnd {
		// Significant line chunks beyond the bar, hence peak is not the limit
		monitoring.Debugf("Staff#%d RIGHT set at blank %d (vs %d)", sp.staff.ID, x, linesEnd)
		sp.staff.SetAbscissa(Right, x)
	} else {
		// No significant line chunks, ignore them and stay with the peak
		monitoring.Debugf("Staff#%d RIGHT set at peak %d (vs %d)", sp.staff.ID, endPeak.Mid(), linesEnd)
		sp.staff.SetAbscissa(Right, endPeak.Mid())
		endPeak.SetStaffEnd(Right)
	}
}

func (sp *StaffProjector) String() string {
	return fmt.Sprintf("StaffProjector#%d", sp.staff.ID)
}

// computeProjection cumulates, for each abscissa value, the foreground pixels
// between the first and last lines of the staff.
func (sp *StaffProjector) computeProjection() {
	values := make([]int, sp.sheet.Width)

	firstLine := sp.staff.FirstLine()
	lastLine := sp.staff.LastLine()
	dx := sp.scaleParams.StaffAbscissaMargin
	xMin := sp.sheet.XClamp(sp.staff.Abscissa(Left) - dx)
	xMax := sp.sheet.XClamp(sp.staff.Abscissa(Right) + dx)

	for x := xMin; x <= xMax; x++ {
		yMin := firstLine.YAt(x)
		yMax := lastLine.YAt(x)
		count := 0

		for y := yMin; y <= yMax; y++ {
			if sp.sheet.Source.Foreground(x, y) {
				count++
			}
		}

		values[x] = count
	}

	sp.projection = NewProjection(values)
}

// selectEndingBlanks selects the pair of ending blanks that limit peak search.
func (sp *StaffProjector) selectEndingBlanks() {
	if len(sp.allBlanks) == 0 {
		return
	}

	for _, side := range []HorizontalSide{Left, Right} {
		// Look for the first really wide blank encountered
		blank := sp.selectBlank(side, sp.staff.Abscissa(side), sp.params.MinWideBlankWidth)

		if blank == nil {
			// No wide blank found, simply pick up the one farthest from staff
			if side == Left {
				blank = &sp.allBlanks[0]
			} else {
				blank = &sp.allBlanks[len(sp.allBlanks)-1]
			}
		}

		sp.endingBlanks[side] = blank
	}
}

// selectBlank reports the relevant blank region on the desired staff side:
// the first blank beyond the given abscissa (in the side direction) whose
// width reaches minWidth, or nil.
func (sp *StaffProjector) selectBlank(side HorizontalSide, start, minWidth int) *Blank {
	dir := 1
	rInit := 0
	rBreak := len(sp.allBlanks)
	if side == Left {
		dir = -1
		rInit = len(sp.allBlanks) - 1
		rBreak = -1
	}

	for ir := rInit; ir != rBreak; ir += dir {
		blank := &sp.allBlanks[ir]
		mid := (blank.Start + blank.Stop) / 2

		// Make sure we are on the desired side of the staff
		if dir*(mid-start) > 0 {
			// Stop on first significant blank
			if blank.Width() >= minWidth {
				return blank
			}
		}
	}

	return nil
}

// findPeaks retrieves the relevant (bar line) peaks in the staff projection,
// populating the peaks sequence.
func (sp *StaffProjector) findPeaks() {
	minValue := sp.params.BarThreshold

	xMin := 0
	if leftBlank := sp.endingBlanks[Left]; leftBlank != nil {
		xMin = leftBlank.Stop
	}
	xMax := sp.sheet.Width - 1
	if rightBlank := sp.endingBlanks[Right]; rightBlank != nil {
		xMax = rightBlank.Start
	}

	start := -1
	stop := -1

	for x := xMin; x <= xMax; x++ {
		value := sp.projection.Value(x)

		if value >= minValue {
			if start == -1 {
				start = x
			}
			stop = x
		} else if start != -1 {
			for _, peak := range sp.browseRange(start, stop) {
				sp.peaks = append(sp.peaks, peak)
				sp.graph.AddVertex(peak)
			}
			start = -1
		}
	}

	// Finish ongoing peak if any (this is very unlikely)
	if start != -1 {
		if peak := sp.createPeak(start, stop); peak != nil {
			sp.peaks = append(sp.peaks, peak)
			sp.graph.AddVertex(peak)
		}
	}

	monitoring.Debugf("Staff#%d peaks:%v", sp.staff.ID, sp.peaks)
}

// browseRange (tries to) create one or more relevant peaks at the provided
// range, governed by derivative extrema. Wide ranges above the bar threshold
// need to be split into individual peaks.
func (sp *StaffProjector) browseRange(rangeStart, rangeStop int) []*StaffPeak {
	monitoring.Debugf("Staff#%d browseRange [%d..%d]", sp.staff.ID, rangeStart, rangeStop)

	var list []*StaffPeak
	start := rangeStart

	for x := rangeStart; x <= rangeStop; x++ {
		der := sp.projection.Derivative(x)

		if der >= sp.params.MinDerivative {
			// Climb the ascending slope to its local maximum
			maxDer := der
			for xx := x + 1; xx <= rangeStop; xx++ {
				xxDer := sp.projection.Derivative(xx)
				if xxDer > maxDer {
					maxDer = xxDer
					x = xx
				} else {
					break
				}
			}
			start = x
		} else if der <= -sp.params.MinDerivative {
			// Follow the descending slope to its local minimum
			minDer := der
			for xx := x + 1; xx <= sp.sheet.XClamp(rangeStop+1); xx++ {
				xxDer := sp.projection.Derivative(xx)
				if xxDer <= minDer {
					minDer = xxDer
					x = xx
				} else {
					break
				}
			}

			if x == rangeStop {
				x = rangeStop + 1
			}
			stop := x

			if start != -1 && start < stop {
				if peak := sp.createPeak(start, stop-1); peak != nil {
					list = append(list, peak)
				}
				start = -1
			}
		}
	}

	// A last peak?
	if start != -1 {
		if peak := sp.createPeak(start, rangeStop); peak != nil {
			list = append(list, peak)
		}
	}

	return list
}

// createPeak (tries to) create a relevant peak at the provided location,
// reporting nil when any acceptance check fails.
func (sp *StaffProjector) createPeak(rawStart, rawStop int) *StaffPeak {
	minValue := sp.params.BarThreshold
	totalHeight := sp.sheet.Scale.StaffHeight()
	valueRange := float64(totalHeight - minValue)

	// Compute precise start & stop abscissae
	newStart := sp.refinePeakSide(rawStart, rawStop, -1)
	if newStart == nil {
		return nil
	}
	start := newStart.abscissa

	newStop := sp.refinePeakSide(rawStart, rawStop, +1)
	if newStop == nil {
		return nil
	}
	stop := newStop.abscissa

	// Check peak width is not huge
	if stop-start+1 > sp.params.MaxBarWidth {
		return nil
	}

	// Retrieve highest value
	value := 0
	for x := start; x <= stop; x++ {
		if v := sp.projection.Value(x); v > value {
			value = v
		}
	}

	// Compute the largest white gap at the horizontal midpoint
	xMid := (start + stop) / 2
	yTop := sp.staff.FirstLine().YAt(xMid)
	yBottom := sp.staff.LastLine().YAt(xMid)

	// If the peak is very thin, thicken the lookup area
	width := stop - start + 1
	dx := 0
	if width <= 2 {
		dx = 1
	}
	gap := verticalCoreGap(sp.sheet.Source, start-dx, stop+dx, yTop, yBottom)
	if gap > sp.params.GapThreshold {
		return nil
	}

	// Compute black core & impacts
	coreImpact := float64(value-minValue) / valueRange
	gapImpact := 1 - float64(gap)/float64(sp.params.GapThreshold)
	impacts := NewBarImpacts(coreImpact, gapImpact, newStart.grade, newStop.grade)

	if impacts.Grade() < sp.params.MinGrade {
		return nil
	}

	bar := NewStaffPeak(sp.staff, yTop, yBottom, start, stop, impacts)
	bar.ComputeDeskewedCenter(sp.sheet.Skew)
	monitoring.Debugf("Staff#%d %s", sp.staff.ID, bar)

	return bar
}

// refinePeakSide uses the extrema of the first derivative to refine a peak
// side abscissa: maximum derivative for the left side, minimum for the right
// side. The derivative absolute value indicates whether the side is really
// steep, which excludes most braces, arpeggiati, and stems with side heads.
//
// dir is -1 for going left, +1 for going right. A nil result means the side
// is not steep enough and the peak must be rejected.
func (sp *StaffProjector) refinePeakSide(xStart, xStop, dir int) *peakSide {
	// Additional check range beyond the raw edge
	dx := sp.params.BarRefineDx

	// Beginning and ending x values
	mid := float64(xStop+xStart) / 2.0
	var x1, x2 int
	if dir > 0 {
		x1 = int(math.Ceil(mid))
		x2 = sp.sheet.XClamp(xStop + dx)
	} else {
		x1 = int(math.Floor(mid))
		x2 = sp.sheet.XClamp(xStart - dx)
	}

	bestDer := 0 // Best derivative so far
	bestX := -1  // Abscissa at best derivative

	for x := x1; dir*(x2-x) >= 0; x += dir {
		val := sp.projection.Value(x)
		der := sp.projection.Derivative(x)

		if dir*(bestDer-der) > 0 {
			bestDer = der
			bestX = x
		}

		// Check we are still higher than chunk level
		if val < sp.params.ChunkThreshold {
			break
		}
	}

	if bestDer < 0 {
		bestDer = -bestDer
	}

	if bestDer < sp.params.MinDerivative || bestX == -1 {
		return nil // Invalid
	}

	x := bestX
	if dir > 0 {
		x = bestX - 1
	}
	derImpact := float64(bestDer) / float64(sp.params.BarThreshold-sp.params.MinDerivative)

	return &peakSide{abscissa: x, grade: derImpact}
}

// createBracePeak precisely defines the bounds of a brace candidate peak,
// starting from its raw extent at the brace threshold. It reports nil when no
// preceding blank or no right valley minimum exists.
func (sp *StaffProjector) createBracePeak(rawStart, rawStop, maxRight int) *StaffPeak {
	// Extend left abscissa until a blank (no-staff) region is reached
	var leftBlank *Blank
	for i := range sp.allBlanks {
		if sp.allBlanks[i].Stop >= rawStart {
			break
		}
		leftBlank = &sp.allBlanks[i]
	}
	if leftBlank == nil {
		return nil
	}

	// Descend the hill down to the true local minimum
	start := leftBlank.Stop
	val := sp.projection.Value(start)
	for start > 0 {
		nextVal := sp.projection.Value(start - 1)
		if nextVal >= val {
			break
		}
		start--
		val = nextVal
	}

	// Perhaps there is no real blank between brace and bar, so use the lowest
	// point in the valley on the right
	bestVal := int(^uint(0) >> 1)
	stop := -1
	for x := rawStop; x <= maxRight; x++ {
		if v := sp.projection.Value(x); v < bestVal {
			bestVal = v
			stop = x
		}
	}
	if stop == -1 {
		return nil
	}

	xMid := (start + stop) / 2
	yTop := sp.staff.FirstLine().YAt(xMid)
	yBottom := sp.staff.LastLine().YAt(xMid)

	brace := newBracePeak(sp.staff, yTop, yBottom, start, stop)
	brace.ComputeDeskewedCenter(sp.sheet.Skew)

	return brace
}
