// Package config loads tuning overrides for the staff analysis pipeline.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig carries optional overrides for the scale-dependent detection
// constants. All abscissa-related fields are fractions of interline; the
// blank threshold is a fraction of mean staff-line thickness. Fields left
// nil keep their built-in defaults, so partial configs are safe.
type TuningConfig struct {
	// Projection / search window
	StaffAbscissaMargin *float64 `json:"staff_abscissa_margin,omitempty"`

	// Peak detection
	BarRefineDx   *float64 `json:"bar_refine_dx,omitempty"`
	MinDerivative *float64 `json:"min_derivative,omitempty"`
	BarThreshold  *float64 `json:"bar_threshold,omitempty"`
	GapThreshold  *float64 `json:"gap_threshold,omitempty"`
	MaxBarWidth   *float64 `json:"max_bar_width,omitempty"`

	// Brace detection
	BraceThreshold *float64 `json:"brace_threshold,omitempty"`

	// Blank regions
	BlankLineFraction  *float64 `json:"blank_line_fraction,omitempty"`
	ChunkFraction      *float64 `json:"chunk_fraction,omitempty"`
	MinWideBlankWidth  *float64 `json:"min_wide_blank_width,omitempty"`
	MinSmallBlankWidth *float64 `json:"min_small_blank_width,omitempty"`

	// Staff end refinement
	MaxBarToLinesRightEnd *float64 `json:"max_bar_to_lines_right_end,omitempty"`

	// Acceptance
	MinGrade *float64 `json:"min_grade,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must have
// a .json extension and stay under the max file size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *TuningConfig) Validate() error {
	positives := map[string]*float64{
		"staff_abscissa_margin":      c.StaffAbscissaMargin,
		"bar_refine_dx":              c.BarRefineDx,
		"min_derivative":             c.MinDerivative,
		"bar_threshold":              c.BarThreshold,
		"gap_threshold":              c.GapThreshold,
		"max_bar_width":              c.MaxBarWidth,
		"brace_threshold":            c.BraceThreshold,
		"blank_line_fraction":        c.BlankLineFraction,
		"chunk_fraction":             c.ChunkFraction,
		"min_wide_blank_width":       c.MinWideBlankWidth,
		"min_small_blank_width":      c.MinSmallBlankWidth,
		"max_bar_to_lines_right_end": c.MaxBarToLinesRightEnd,
	}
	for name, v := range positives {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", name, *v)
		}
	}

	if c.MinGrade != nil {
		if *c.MinGrade < 0 || *c.MinGrade > 1 {
			return fmt.Errorf("min_grade must be between 0 and 1, got %f", *c.MinGrade)
		}
	}

	return nil
}
