// Command staffscan runs the staff projection analysis on a score image and
// reports the bar-line peak candidates found on each staff.
//
// Staff geometry (line positions, thickness, horizontal extent) must be given
// on the command line: line detection itself happens upstream of this tool.
// Without -image a small synthetic score is analysed instead, which is handy
// for checking a tuning configuration.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"syscall"

	"github.com/disintegration/imaging"

	"github.com/omrkit/staffscan/internal/config"
	"github.com/omrkit/staffscan/internal/monitoring"
	"github.com/omrkit/staffscan/internal/omr"
	"github.com/omrkit/staffscan/internal/omr/monitor"
	"github.com/omrkit/staffscan/internal/version"
)

// imageSource reads foreground pixels from a grayscale image with a fixed
// luminance threshold.
type imageSource struct {
	img       image.Image
	threshold uint8
}

func (s imageSource) Foreground(x, y int) bool {
	b := s.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return false
	}
	g := color.GrayModel.Convert(s.img.At(x, y)).(color.Gray)
	return g.Y < s.threshold
}

// demoSource draws a synthetic one-staff score with two bar lines.
type demoSource struct{}

func (demoSource) Foreground(x, y int) bool {
	// Bar lines spanning the staff height
	if (x == 100 || x == 101 || x == 188 || x == 189) && y >= 20 && y <= 60 {
		return true
	}
	// Five staff lines
	if x < 10 || x > 190 {
		return false
	}
	switch y {
	case 20, 30, 40, 50, 60:
		return true
	}
	return false
}

// sheetAnalysis holds the per-staff projectors of one sheet and serves their
// series to the monitor web server.
type sheetAnalysis struct {
	projectors []*omr.StaffProjector
}

func (a *sheetAnalysis) ProjectionSeries() []*omr.ProjectionSeries {
	out := make([]*omr.ProjectionSeries, 0, len(a.projectors))
	for _, sp := range a.projectors {
		if s := sp.Series(); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func main() {
	imagePath := flag.String("image", "", "Path to score image (PNG/JPEG); synthetic demo score if empty")
	threshold := flag.Int("threshold", 127, "Foreground luminance threshold (0-255)")
	interline := flag.Int("interline", 10, "Interline value in pixels")
	maxForeRun := flag.Int("max-fore-run", 1, "Maximum typical vertical foreground run (line thickness)")
	firstLineY := flag.Int("first-line-y", 20, "Ordinate of the first (top) staff line")
	lineThickness := flag.Float64("line-thickness", 1, "Mean staff line thickness in pixels")
	staffLeft := flag.Int("staff-left", 10, "Staff left abscissa, as defined by line ends")
	staffRight := flag.Int("staff-right", 190, "Staff right abscissa, as defined by line ends")
	tuningPath := flag.String("tuning", "", "Path to JSON tuning configuration")
	outPath := flag.String("out", "", "Write a projection plot PNG to this path")
	serveAddr := flag.String("serve", "", "Serve diagnostic charts on this address (e.g. :8081)")
	asJSON := flag.Bool("json", false, "Print the full run record as JSON instead of a table")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	monitoring.SetDebug(*debug)

	var tuning *config.TuningConfig
	if *tuningPath != "" {
		loaded, err := config.LoadTuningConfig(*tuningPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load tuning config: %v\n", err)
			os.Exit(1)
		}
		tuning = loaded
	}

	sheet, err := buildSheet(*imagePath, *threshold, *interline, *maxForeRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build sheet: %v\n", err)
		os.Exit(1)
	}

	lines := make([]omr.StaffLine, 5)
	for i := range lines {
		lines[i] = omr.StraightLine{Y: *firstLineY + i**interline, Thick: *lineThickness}
	}
	staff := omr.NewStaff(1, lines, *staffLeft, *staffRight)

	scaleParams := omr.NewScaleParams(sheet.Scale, tuning)
	graph := omr.NewMemoryPeakGraph()
	run := omr.NewAnalysisRun(sheet, scaleParams)

	sp := omr.NewStaffProjector(sheet, staff, scaleParams, graph)
	sp.Process()
	sp.RefineRightEnd()
	run.RecordStaff(sp)

	if *asJSON {
		b, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal run: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
	} else {
		printRun(run, sp)
	}

	if *outPath != "" {
		if err := writePlot(sp, *outPath); err != nil {
			fmt.Fprintf(os.Stderr, "write plot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("plot written to %s\n", *outPath)
	}

	if *serveAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ws := monitor.NewWebServer(monitor.WebServerConfig{
			Address:  *serveAddr,
			Provider: &sheetAnalysis{projectors: []*omr.StaffProjector{sp}},
		})
		if err := ws.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "web server: %v\n", err)
			os.Exit(1)
		}
	}
}

func buildSheet(imagePath string, threshold, interline, maxForeRun int) (*omr.Sheet, error) {
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold must be between 0 and 255, got %d", threshold)
	}

	scale := omr.Scale{Interline: interline, MaxForeRun: maxForeRun}

	if imagePath == "" {
		return &omr.Sheet{
			ID:     "demo",
			Width:  200,
			Height: 80,
			Source: demoSource{},
			Scale:  scale,
		}, nil
	}

	img, err := imaging.Open(imagePath)
	if err != nil {
		return nil, err
	}
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()

	return &omr.Sheet{
		ID:     imagePath,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Source: imageSource{img: gray, threshold: uint8(threshold)},
		Scale:  scale,
	}, nil
}

func printRun(run *omr.AnalysisRun, sp *omr.StaffProjector) {
	fmt.Printf("run %s sheet %s\n", run.RunID, run.SheetID)

	stats := omr.ComputeDetectionStats(sp)
	fmt.Printf("staff #%d: %d peaks, %d blanks, staff range [%d..%d]\n",
		sp.Staff().ID, stats.PeakCount, stats.BlankCount,
		sp.Staff().Abscissa(omr.Left), sp.Staff().Abscissa(omr.Right))

	if stats.PeakCount > 0 {
		fmt.Printf("widths: mean %.2f std %.2f; grades: mean %.3f std %.3f [%.3f..%.3f]\n",
			stats.MeanWidth, stats.StdWidth,
			stats.MeanGrade, stats.StdGrade, stats.MinGrade, stats.MaxGrade)
	}

	fmt.Println("start,stop,width,grade,brace,staff_end")
	for _, p := range sp.Peaks() {
		fmt.Printf("%d,%d,%d,%.3f,%v,%v\n",
			p.Start(), p.Stop(), p.Width(), p.Grade(), p.IsBrace(),
			p.IsStaffEnd(omr.Left) || p.IsStaffEnd(omr.Right))
	}
}

func writePlot(sp *omr.StaffProjector, path string) error {
	series := sp.Series()
	if series == nil {
		return fmt.Errorf("no series available")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return monitor.RenderProjectionPNG(series, f)
}
