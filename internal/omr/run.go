package omr

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRun identifies one complete analysis pass over a sheet, for
// diagnostics and reproducibility of tuning experiments.
type AnalysisRun struct {
	RunID     string      `json:"run_id"`
	SheetID   string      `json:"sheet_id"`
	StartedAt time.Time   `json:"started_at"`
	Scale     Scale       `json:"scale"`
	Params    ScaleParams `json:"params"`

	// Per-staff outcomes, filled as projectors complete.
	Staves []StaffResult `json:"staves"`
}

// StaffResult summarises one staff's detection outcome within a run.
type StaffResult struct {
	StaffID    int        `json:"staff_id"`
	PeakCount  int        `json:"peak_count"`
	BlankCount int        `json:"blank_count"`
	BracePeak  bool       `json:"brace_peak"`
	Peaks      []PeakSpan `json:"peaks"`
}

// NewAnalysisRun opens a run record for a sheet.
func NewAnalysisRun(sheet *Sheet, params ScaleParams) *AnalysisRun {
	return &AnalysisRun{
		RunID:     "run_" + uuid.NewString(),
		SheetID:   sheet.ID,
		StartedAt: time.Now(),
		Scale:     sheet.Scale,
		Params:    params,
	}
}

// RecordStaff appends one projector's outcome to the run.
func (r *AnalysisRun) RecordStaff(sp *StaffProjector) {
	result := StaffResult{
		StaffID:    sp.Staff().ID,
		PeakCount:  len(sp.Peaks()),
		BlankCount: len(sp.Blanks()),
		BracePeak:  sp.BracePeak() != nil,
	}
	for _, p := range sp.Peaks() {
		result.Peaks = append(result.Peaks, PeakSpan{
			Start: p.Start(),
			Stop:  p.Stop(),
			Grade: p.Grade(),
			Brace: p.IsBrace(),
		})
	}
	r.Staves = append(r.Staves, result)
}
