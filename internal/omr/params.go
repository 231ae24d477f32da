package omr

import (
	"math"

	"github.com/omrkit/staffscan/internal/config"
)

// Default detection constants. Abscissa and cumul values are fractions of
// interline, except blankLineFraction which applies to the mean staff-line
// thickness.
const (
	defaultStaffAbscissaMargin   = 10.0
	defaultBarRefineDx           = 0.25
	defaultMinDerivative         = 0.625
	defaultBarThreshold          = 2.5
	defaultBraceThreshold        = 1.1
	defaultGapThreshold          = 0.75
	defaultChunkFraction         = 0.8
	defaultBlankLineFraction     = 2.5
	defaultMinWideBlankWidth     = 2.0
	defaultMinSmallBlankWidth    = 0.1
	defaultMaxBarWidth           = 1.0
	defaultMaxBarToLinesRightEnd = 0.15

	// DefaultMinGrade is the minimum acceptable peak grade.
	DefaultMinGrade = 0.1
)

// ScaleParams holds the detection thresholds that depend only on the sheet
// scale. It is the first step of the two-step parameter build; call ForStaff
// to add the staff-measured thresholds.
type ScaleParams struct {
	StaffAbscissaMargin   int
	BarRefineDx           int
	MinDerivative         int
	BarThreshold          int
	BraceThreshold        int
	GapThreshold          int
	MinWideBlankWidth     int
	MinSmallBlankWidth    int
	MaxBarWidth           int
	MaxBarToLinesRightEnd int
	MinGrade              float64

	scale             Scale
	blankLineFraction float64
	chunkFraction     float64
}

// Parameters is the complete, immutable per-staff threshold set: the scale
// phase plus the thresholds derived from the staff's measured line
// thicknesses.
type Parameters struct {
	ScaleParams

	// LinesThreshold is the rounded cumulated line thickness: a column at or
	// above it carries more ink than the bare staff lines.
	LinesThreshold int
	// BlankThreshold is the cumul value at or below which a column is
	// considered to carry no staff line at all.
	BlankThreshold int
	// ChunkThreshold is the cumul value below which a projection column is
	// considered to be within line cores, making derivatives unreliable.
	ChunkThreshold int
}

// NewScaleParams derives the scale-dependent thresholds, applying any tuning
// overrides.
func NewScaleParams(scale Scale, tuning *config.TuningConfig) ScaleParams {
	frac := func(override *float64, def float64) float64 {
		if override != nil {
			return *override
		}
		return def
	}
	if tuning == nil {
		tuning = config.EmptyTuningConfig()
	}

	return ScaleParams{
		StaffAbscissaMargin:   scale.ToPixels(frac(tuning.StaffAbscissaMargin, defaultStaffAbscissaMargin)),
		BarRefineDx:           scale.ToPixels(frac(tuning.BarRefineDx, defaultBarRefineDx)),
		MinDerivative:         scale.ToPixels(frac(tuning.MinDerivative, defaultMinDerivative)),
		BarThreshold:          scale.ToPixels(frac(tuning.BarThreshold, defaultBarThreshold)),
		BraceThreshold:        scale.ToPixels(frac(tuning.BraceThreshold, defaultBraceThreshold)),
		GapThreshold:          scale.ToPixels(frac(tuning.GapThreshold, defaultGapThreshold)),
		MinWideBlankWidth:     scale.ToPixels(frac(tuning.MinWideBlankWidth, defaultMinWideBlankWidth)),
		MinSmallBlankWidth:    scale.ToPixels(frac(tuning.MinSmallBlankWidth, defaultMinSmallBlankWidth)),
		MaxBarWidth:           scale.ToPixels(frac(tuning.MaxBarWidth, defaultMaxBarWidth)),
		MaxBarToLinesRightEnd: scale.ToPixels(frac(tuning.MaxBarToLinesRightEnd, defaultMaxBarToLinesRightEnd)),
		MinGrade:              frac(tuning.MinGrade, DefaultMinGrade),
		scale:                 scale,
		blankLineFraction:     frac(tuning.BlankLineFraction, defaultBlankLineFraction),
		chunkFraction:         frac(tuning.ChunkFraction, defaultChunkFraction),
	}
}

// ForStaff completes the parameter set with the thresholds that depend on the
// staff's measured line thicknesses. Line measurements are under-estimated
// because lines may have holes and short sections were left apart upstream.
func (sp ScaleParams) ForStaff(staff *Staff) Parameters {
	var linesCumul float64
	for _, line := range staff.Lines() {
		linesCumul += line.Thickness()
	}
	lineThickness := linesCumul / float64(len(staff.Lines()))

	return Parameters{
		ScaleParams:    sp,
		LinesThreshold: int(math.Round(linesCumul)),
		BlankThreshold: int(math.Round(sp.blankLineFraction * lineThickness)),
		ChunkThreshold: 4*sp.scale.MaxForeRun + sp.scale.ToPixels(sp.chunkFraction),
	}
}
