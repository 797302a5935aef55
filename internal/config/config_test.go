package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-xrs/reduce/byline"
	"github.com/cwbudde/algo-xrs/reduce/response"
	"github.com/cwbudde/algo-xrs/reduce/spectrum"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(Defaults()) = %v", err)
	}
	red, err := cfg.Reduction()
	if err != nil {
		t.Fatal(err)
	}
	if red.Mode() != byline.ModePlain {
		t.Fatalf("default mode = %v, want plain", red.Mode())
	}
	if cfg.Options() != nil {
		t.Fatal("default config should not override workers")
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
axis:
  min: 100
  step: 0.5
  bins: 40
threshold:
  fraction: 0.05
reference:
  delta_e: 0.25
  dh_over_di: 0.001
response:
  samples: [0.9, 1.0, 1.1]
  crx: 0.01
  fn_middle: 1
workers: 3
output:
  normalization: denominator
`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	ax, err := cfg.EnergyAxis()
	if err != nil {
		t.Fatal(err)
	}
	if ax.Min != 100 || ax.Step != 0.5 || ax.Bins != 40 {
		t.Fatalf("axis = %+v", ax)
	}
	if cfg.Detector.Cols != Defaults().Detector.Cols {
		t.Fatalf("detector.cols = %d, want default %d", cfg.Detector.Cols, Defaults().Detector.Cols)
	}

	red, err := cfg.Reduction()
	if err != nil {
		t.Fatal(err)
	}
	if red.Mode() != byline.ModeReferenceResponse {
		t.Fatalf("mode = %v, want reference+response", red.Mode())
	}
	if red.Threshold.Fraction != 0.05 || red.Reference.DeltaE != 0.25 || red.Reference.DHoverDI != 0.001 {
		t.Fatalf("reduction = %+v", red)
	}
	if red.Response.Curve.Len() != 3 || red.Response.Mapping != (response.Mapping{CRX: 0.01, FNMiddle: 1}) {
		t.Fatalf("response = %+v", red.Response)
	}
	if n, _ := cfg.Normalization(); n != spectrum.ByDenominator {
		t.Fatalf("normalization = %v, want denominator", n)
	}
	if len(cfg.Options()) != 1 {
		t.Fatalf("Options() = %d options, want 1", len(cfg.Options()))
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero step", "axis: {step: 0}", "axis"},
		{"no bins", "axis: {bins: 0}", "axis"},
		{"empty detector", "detector: {rows: 0}", "detector"},
		{"negative workers", "workers: -1", "workers"},
		{"bad normalization", "output: {normalization: median}", "normalization"},
		{"fraction above one", "threshold: {fraction: 2}", "fraction"},
		{"short response", "response: {samples: [1], crx: 1}", "response"},
		{"zero crx", "response: {samples: [1, 1], crx: 0}", "CRX"},
		{"negative smoothing", "output: {smooth_fwhm: -1}", "smooth_fwhm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateWrapsReducerErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Threshold.Fraction = -1
	if err := Validate(cfg); !errors.Is(err, byline.ErrConfiguration) {
		t.Fatalf("Validate error = %v, want ErrConfiguration", err)
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.Output = OutputConfig{}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Normalization != "frequency" || cfg.Output.Rebin != 1 {
		t.Fatalf("output = %+v, want frequency normalization and rebin 1", cfg.Output)
	}
}

func TestLoadAndMarshalRoundTrip(t *testing.T) {
	want := Defaults()
	want.Reference = &ReferenceConfig{DeltaE: 0.1}
	data, err := want.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "reduce.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Reference == nil || got.Reference.DeltaE != 0.1 || got.Axis != want.Axis || got.Source != want.Source {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
