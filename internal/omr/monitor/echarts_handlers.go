package monitor

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleProjectionChart renders a quick line plot (HTML) of a staff projection
// using go-echarts. This is a debugging-only endpoint (no auth) to visually
// inspect cumul values, derivatives and thresholds without a frontend.
// Query params:
//   - staff_id (optional; defaults to the first staff)
//   - max_points (optional; default 4000) to reduce payload size
func (ws *WebServer) handleProjectionChart(w http.ResponseWriter, r *http.Request) {
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

	maxPoints := 4000
	if mp := r.URL.Query().Get("max_points"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil && v > 100 && v <= 50000 {
			maxPoints = v
		}
	}

	data := PrepareProjectionChartData(series, maxPoints)
	if data.NumPoints == 0 {
		ws.writeJSONError(w, http.StatusNotFound, "empty projection")
		return
	}

	xAxis := make([]string, 0, data.NumPoints)
	cumul := make([]opts.LineData, 0, data.NumPoints)
	derivative := make([]opts.LineData, 0, data.NumPoints)
	barLevel := make([]opts.LineData, 0, data.NumPoints)
	linesLevel := make([]opts.LineData, 0, data.NumPoints)
	chunkLevel := make([]opts.LineData, 0, data.NumPoints)
	for _, p := range data.Points {
		xAxis = append(xAxis, strconv.Itoa(p.X))
		cumul = append(cumul, opts.LineData{Value: p.Value})
		derivative = append(derivative, opts.LineData{Value: p.Derivative})
		barLevel = append(barLevel, opts.LineData{Value: data.BarThreshold})
		linesLevel = append(linesLevel, opts.LineData{Value: data.LinesThreshold})
		chunkLevel = append(chunkLevel, opts.LineData{Value: data.ChunkThreshold})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Staff Projection", Theme: "dark", Width: "1400px", Height: "700px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Staff #%d Projection", data.StaffID),
			Subtitle: fmt.Sprintf("sheet=%s points=%d stride=%d peaks=%d", data.SheetID, data.NumPoints, data.Stride, len(data.Peaks)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cumul (px)", NameLocation: "middle", NameGap: 30}),
	)

	line.SetXAxis(xAxis).
		AddSeries("cumul", cumul).
		AddSeries("derivative", derivative).
		AddSeries("bar threshold", barLevel, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})).
		AddSeries("lines threshold", linesLevel, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})).
		AddSeries("chunk threshold", chunkLevel, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
