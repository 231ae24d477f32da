package omr

// PeakSpan is the raw series form of a detected peak.
type PeakSpan struct {
	Start int     `json:"start"`
	Stop  int     `json:"stop"`
	Grade float64 `json:"grade"`
	Brace bool    `json:"brace"`
}

// ProjectionSeries is a raw-data snapshot of one staff's analysis, meant for
// diagnostic consumers (charts, plots). It carries no behaviour and taking a
// snapshot has no effect on the projector.
type ProjectionSeries struct {
	SheetID string `json:"sheet_id"`
	StaffID int    `json:"staff_id"`

	Values      []int `json:"values"`
	Derivatives []int `json:"derivatives"`

	// Threshold constants, in cumul pixels
	StaffHeight    int `json:"staff_height"`
	BarThreshold   int `json:"bar_threshold"`
	BraceThreshold int `json:"brace_threshold"`
	ChunkThreshold int `json:"chunk_threshold"`
	LinesThreshold int `json:"lines_threshold"`
	BlankThreshold int `json:"blank_threshold"`
	MinDerivative  int `json:"min_derivative"`

	Blanks []Blank    `json:"blanks"`
	Peaks  []PeakSpan `json:"peaks"`
}

// Series reports a diagnostic snapshot of the projector state. It reports
// nil before Process has run.
func (sp *StaffProjector) Series() *ProjectionSeries {
	if sp.projection == nil {
		return nil
	}

	peaks := make([]PeakSpan, 0, len(sp.peaks)+1)
	for _, p := range sp.peaks {
		peaks = append(peaks, PeakSpan{Start: p.Start(), Stop: p.Stop(), Grade: p.Grade(), Brace: p.IsBrace()})
	}
	if b := sp.bracePeak; b != nil {
		peaks = append(peaks, PeakSpan{Start: b.Start(), Stop: b.Stop(), Grade: b.Grade(), Brace: true})
	}

	return &ProjectionSeries{
		SheetID:        sp.sheet.ID,
		StaffID:        sp.staff.ID,
		Values:         sp.projection.Values(),
		Derivatives:    sp.projection.Derivatives(),
		StaffHeight:    sp.sheet.Scale.StaffHeight(),
		BarThreshold:   sp.params.BarThreshold,
		BraceThreshold: sp.params.BraceThreshold,
		ChunkThreshold: sp.params.ChunkThreshold,
		LinesThreshold: sp.params.LinesThreshold,
		BlankThreshold: sp.params.BlankThreshold,
		MinDerivative:  sp.params.MinDerivative,
		Blanks:         sp.Blanks(),
		Peaks:          peaks,
	}
}
