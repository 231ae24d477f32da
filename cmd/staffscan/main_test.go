package main

import (
	"image"
	"image/color"
	"testing"
)

func TestBuildSheetRejectsOutOfRangeThreshold(t *testing.T) {
	for _, threshold := range []int{-1, 256, 300} {
		if _, err := buildSheet("", threshold, 10, 1); err == nil {
			t.Errorf("expected error for threshold %d, got nil", threshold)
		}
	}
}

func TestBuildSheetSyntheticScore(t *testing.T) {
	sheet, err := buildSheet("", 127, 10, 1)
	if err != nil {
		t.Fatalf("buildSheet: %v", err)
	}

	if sheet.Width != 200 || sheet.Height != 80 {
		t.Errorf("unexpected sheet size %dx%d", sheet.Width, sheet.Height)
	}
	if sheet.Scale.Interline != 10 || sheet.Scale.MaxForeRun != 1 {
		t.Errorf("scale not carried over: %+v", sheet.Scale)
	}
	// The synthetic score has a staff line at y=20 and a bar at x=100
	if !sheet.Source.Foreground(50, 20) {
		t.Error("expected staff line ink at (50,20)")
	}
	if !sheet.Source.Foreground(100, 35) {
		t.Error("expected bar ink at (100,35)")
	}
	if sheet.Source.Foreground(50, 21) {
		t.Error("unexpected ink at (50,21)")
	}
}

func TestImageSourceThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(2, 2, color.Gray{Y: 200})
	src := imageSource{img: img, threshold: 127}

	if !src.Foreground(1, 1) {
		t.Error("expected black pixel as foreground")
	}
	if src.Foreground(2, 2) {
		t.Error("expected light pixel as background")
	}
	if src.Foreground(-1, -1) || src.Foreground(4, 0) {
		t.Error("expected background outside image bounds")
	}
}
