// Package monitor provides chart data preparation and HTTP rendering for
// staff projection diagnostics. This file separates data transformation from
// eCharts rendering for improved testability.
package monitor

import (
	"fmt"
	"math"

	"github.com/omrkit/staffscan/internal/omr"
)

// CumulPoint represents one abscissa of the projection curve.
type CumulPoint struct {
	X          int `json:"x"`
	Value      int `json:"value"`
	Derivative int `json:"derivative"`
}

// PeakBand represents one detected peak as a labelled x-range.
type PeakBand struct {
	Start int     `json:"start"`
	Stop  int     `json:"stop"`
	Grade float64 `json:"grade"`
	Brace bool    `json:"brace"`
	Label string  `json:"label"`
}

// ProjectionChartData holds prepared data for rendering one staff projection.
type ProjectionChartData struct {
	SheetID string `json:"sheet_id"`
	StaffID int    `json:"staff_id"`

	Points []CumulPoint `json:"points"`

	// Horizontal reference levels, in cumul pixels
	StaffHeight    int `json:"staff_height"`
	BarThreshold   int `json:"bar_threshold"`
	BraceThreshold int `json:"brace_threshold"`
	ChunkThreshold int `json:"chunk_threshold"`
	LinesThreshold int `json:"lines_threshold"`
	BlankThreshold int `json:"blank_threshold"`

	Peaks []PeakBand `json:"peaks"`

	MaxValue  int `json:"max_value"`
	Stride    int `json:"stride"`
	NumPoints int `json:"num_points"`
}

// PrepareProjectionChartData transforms a projection series into chart-ready
// form. It handles downsampling by stride to stay within maxPoints.
func PrepareProjectionChartData(series *omr.ProjectionSeries, maxPoints int) *ProjectionChartData {
	if series == nil || len(series.Values) == 0 {
		return &ProjectionChartData{Points: []CumulPoint{}, Peaks: []PeakBand{}}
	}

	if maxPoints <= 0 {
		maxPoints = 4000
	}

	stride := 1
	if len(series.Values) > maxPoints {
		stride = int(math.Ceil(float64(len(series.Values)) / float64(maxPoints)))
	}

	points := make([]CumulPoint, 0, len(series.Values)/stride+1)
	maxValue := 0

	for x := 0; x < len(series.Values); x += stride {
		value := series.Values[x]
		if value > maxValue {
			maxValue = value
		}
		points = append(points, CumulPoint{X: x, Value: value, Derivative: series.Derivatives[x]})
	}

	return &ProjectionChartData{
		SheetID:        series.SheetID,
		StaffID:        series.StaffID,
		Points:         points,
		StaffHeight:    series.StaffHeight,
		BarThreshold:   series.BarThreshold,
		BraceThreshold: series.BraceThreshold,
		ChunkThreshold: series.ChunkThreshold,
		LinesThreshold: series.LinesThreshold,
		BlankThreshold: series.BlankThreshold,
		Peaks:          PreparePeakBands(series.Peaks),
		MaxValue:       maxValue,
		Stride:         stride,
		NumPoints:      len(points),
	}
}

// PreparePeakBands transforms raw peak spans into labelled chart bands.
func PreparePeakBands(spans []omr.PeakSpan) []PeakBand {
	bands := make([]PeakBand, 0, len(spans))

	for _, s := range spans {
		kind := "bar"
		if s.Brace {
			kind = "brace"
		}
		bands = append(bands, PeakBand{
			Start: s.Start,
			Stop:  s.Stop,
			Grade: s.Grade,
			Brace: s.Brace,
			Label: fmt.Sprintf("%s(%d-%d)", kind, s.Start, s.Stop),
		})
	}

	return bands
}
