package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTuningConfig_Partial(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"bar_threshold": 2.0, "min_grade": 0.2}`)

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}

	if cfg.BarThreshold == nil || *cfg.BarThreshold != 2.0 {
		t.Errorf("expected bar_threshold=2.0, got %v", cfg.BarThreshold)
	}
	if cfg.MinGrade == nil || *cfg.MinGrade != 0.2 {
		t.Errorf("expected min_grade=0.2, got %v", cfg.MinGrade)
	}
	// Omitted fields stay unset so defaults apply downstream
	if cfg.MinDerivative != nil {
		t.Errorf("expected min_derivative unset, got %v", *cfg.MinDerivative)
	}
}

func TestLoadTuningConfig_RejectsNonJSON(t *testing.T) {
	path := writeConfig(t, "tuning.yaml", `bar_threshold: 2.0`)

	if _, err := LoadTuningConfig(path); err == nil {
		t.Fatal("expected error for non-.json extension")
	}
}

func TestLoadTuningConfig_MissingFile(t *testing.T) {
	if _, err := LoadTuningConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	bad := -0.5
	good := 0.5
	over := 1.5

	tests := []struct {
		name    string
		cfg     TuningConfig
		wantErr bool
	}{
		{"empty", TuningConfig{}, false},
		{"valid grade", TuningConfig{MinGrade: &good}, false},
		{"negative grade", TuningConfig{MinGrade: &bad}, true},
		{"grade above one", TuningConfig{MinGrade: &over}, true},
		{"negative threshold", TuningConfig{BarThreshold: &bad}, true},
		{"valid threshold", TuningConfig{BarThreshold: &good}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
