package monitor

import (
	"fmt"
	"image/color"
	"io"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/omrkit/staffscan/internal/omr"
)

// RenderProjectionPNG draws the projection of one staff into a PNG image:
// cumul and derivative curves, horizontal threshold levels and a vertical
// band for every detected peak.
func RenderProjectionPNG(series *omr.ProjectionSeries, w io.Writer) error {
	if series == nil || len(series.Values) == 0 {
		return fmt.Errorf("empty projection series")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Staff #%d Projection (%s)", series.StaffID, series.SheetID)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "cumul (px)"

	width := len(series.Values)

	cumulPts := make(plotter.XYs, width)
	derPts := make(plotter.XYs, width)
	for x := 0; x < width; x++ {
		cumulPts[x] = plotter.XY{X: float64(x), Y: float64(series.Values[x])}
		derPts[x] = plotter.XY{X: float64(x), Y: float64(series.Derivatives[x])}
	}

	cumulLine, err := plotter.NewLine(cumulPts)
	if err != nil {
		return err
	}
	cumulLine.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	cumulLine.Width = vg.Points(1)
	p.Add(cumulLine)
	p.Legend.Add("cumul", cumulLine)

	derLine, err := plotter.NewLine(derPts)
	if err != nil {
		return err
	}
	derLine.Color = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	derLine.Width = vg.Points(1)
	p.Add(derLine)
	p.Legend.Add("derivative", derLine)

	levels := []struct {
		name  string
		value int
		col   color.RGBA
	}{
		{"staff height", series.StaffHeight, color.RGBA{R: 127, G: 127, B: 127, A: 255}},
		{"bar threshold", series.BarThreshold, color.RGBA{R: 214, G: 39, B: 40, A: 255}},
		{"lines threshold", series.LinesThreshold, color.RGBA{R: 44, G: 160, B: 44, A: 255}},
		{"chunk threshold", series.ChunkThreshold, color.RGBA{R: 255, G: 127, B: 14, A: 255}},
		{"blank threshold", series.BlankThreshold, color.RGBA{R: 140, G: 86, B: 75, A: 255}},
	}
	for _, lvl := range levels {
		line, err := plotter.NewLine(plotter.XYs{
			{X: 0, Y: float64(lvl.value)},
			{X: float64(width - 1), Y: float64(lvl.value)},
		})
		if err != nil {
			return err
		}
		line.Color = lvl.col
		line.Width = vg.Points(1)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(lvl.name, line)
	}

	// Mark each peak extent with a pair of vertical lines
	peakColor := color.RGBA{R: 227, G: 119, B: 194, A: 255}
	top := float64(series.StaffHeight)
	for _, peak := range series.Peaks {
		for _, x := range []int{peak.Start, peak.Stop} {
			line, err := plotter.NewLine(plotter.XYs{
				{X: float64(x), Y: 0},
				{X: float64(x), Y: top},
			})
			if err != nil {
				return err
			}
			line.Color = peakColor
			line.Width = vg.Points(1)
			p.Add(line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("prepare png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}

	return nil
}

// handleProjectionPlot renders the projection of one staff as a PNG image.
// Query params:
//   - staff_id (optional; defaults to the first staff)
func (ws *WebServer) handleProjectionPlot(w http.ResponseWriter, r *http.Request) {
	allSeries := ws.allSeries()
	if len(allSeries) == 0 {
		ws.writeJSONError(w, http.StatusNotFound, "no projection series available")
		return
	}

	series := allSeries[0]
	if s := r.URL.Query().Get("staff_id"); s != "" {
		if series = ws.findSeries(allSeries, s); series == nil {
			ws.writeJSONError(w, http.StatusNotFound, "no series for staff "+s)
			return
		}
	}

	w.Header().Set("Content-Type", "image/png")
	if err := RenderProjectionPNG(series, w); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render plot: %v", err))
	}
}
