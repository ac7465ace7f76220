package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := `output_path: out.csv
run_timeout: 30s
source:
  method: pdftotext
  ocr:
    dpi: 200
rules:
  top_lines: 3
  phone:
    country_codes: ["44"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RESUME_REPORT", "table")
	t.Setenv("RESUME_RULES_PHONE_LEADING_DIGITS", "7")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.OutputPath != "out.csv" || cfg.RunTimeout != 30*time.Second {
		t.Errorf("output %q timeout %v", cfg.OutputPath, cfg.RunTimeout)
	}
	if cfg.Source.Method != "pdftotext" || cfg.Source.OCR.DPI != 200 || cfg.Source.OCR.Lang != "eng" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Report != "table" {
		t.Errorf("report = %q, want env override", cfg.Report)
	}
	if diff := cmp.Diff([]string{"44"}, cfg.Rules.Phone.CountryCodes); diff != "" {
		t.Errorf("country codes (-want +got):\n%s", diff)
	}
	if cfg.Rules.Phone.LeadingDigits != "7" || cfg.Rules.TopLines != 3 {
		t.Errorf("rules = %+v", cfg.Rules)
	}
	if len(cfg.Rules.SocialDomains) == 0 {
		t.Error("social domains should keep their default")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"report", func(c *Config) { c.Report = "html" }},
		{"log level", func(c *Config) { c.Log.Level = "trace" }},
		{"source method", func(c *Config) { c.Source.Method = "magic" }},
		{"max digits below min", func(c *Config) { c.Rules.Phone.MaxDigits = 5 }},
		{"non-digit country code", func(c *Config) { c.Rules.Phone.CountryCodes = []string{"+91"} }},
		{"no social domains", func(c *Config) { c.Rules.SocialDomains = nil }},
		{"dpi", func(c *Config) { c.Source.OCR.DPI = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume-extractor.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}
