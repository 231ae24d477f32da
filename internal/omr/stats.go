package omr

import "gonum.org/v1/gonum/stat"

// DetectionStats holds aggregate statistics over one staff's accepted peaks,
// used to compare tuning configurations across runs.
type DetectionStats struct {
	PeakCount  int     `json:"peak_count"`
	BlankCount int     `json:"blank_count"`
	MeanWidth  float64 `json:"mean_width"`
	StdWidth   float64 `json:"std_width"`
	MeanGrade  float64 `json:"mean_grade"`
	StdGrade   float64 `json:"std_grade"`
	MinGrade   float64 `json:"min_grade"`
	MaxGrade   float64 `json:"max_grade"`
}

// ComputeDetectionStats calculates aggregate peak statistics for a projector.
func ComputeDetectionStats(sp *StaffProjector) DetectionStats {
	peaks := sp.Peaks()
	stats := DetectionStats{
		PeakCount:  len(peaks),
		BlankCount: len(sp.Blanks()),
	}
	if len(peaks) == 0 {
		return stats
	}

	widths := make([]float64, len(peaks))
	grades := make([]float64, len(peaks))
	stats.MinGrade = 1
	for i, p := range peaks {
		widths[i] = float64(p.Width())
		grades[i] = p.Grade()
		if grades[i] < stats.MinGrade {
			stats.MinGrade = grades[i]
		}
		if grades[i] > stats.MaxGrade {
			stats.MaxGrade = grades[i]
		}
	}

	stats.MeanWidth, stats.StdWidth = stat.MeanStdDev(widths, nil)
	stats.MeanGrade, stats.StdGrade = stat.MeanStdDev(grades, nil)

	// MeanStdDev reports NaN stddev for a single sample
	if len(peaks) == 1 {
		stats.StdWidth = 0
		stats.StdGrade = 0
	}

	return stats
}
