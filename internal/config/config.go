// Package config loads the YAML description of a reduction run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete description of a reduction run.
type Config struct {
	Axis      AxisConfig       `yaml:"axis"`
	Detector  DetectorConfig   `yaml:"detector"`
	Line      LineConfig       `yaml:"line"`
	Threshold ThresholdConfig  `yaml:"threshold"`
	Reference *ReferenceConfig `yaml:"reference,omitempty"`
	Response  *ResponseConfig  `yaml:"response,omitempty"`
	Workers   int              `yaml:"workers"` // 0 uses GOMAXPROCS
	Source    SourceConfig     `yaml:"source"`
	Output    OutputConfig     `yaml:"output"`
}

// AxisConfig is the energy axis of the output spectrum.
type AxisConfig struct {
	Min  float64 `yaml:"min"`
	Step float64 `yaml:"step"`
	Bins int     `yaml:"bins"`
}

// DetectorConfig describes the synthetic detector: a linear energy map
// along the columns plus randomly placed dead pixels.
type DetectorConfig struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	EnergyOrigin float64 `yaml:"energy_origin"` // energy of column 0
	EnergyStep   float64 `yaml:"energy_step"`   // energy per column
	DeadPixels   int     `yaml:"dead_pixels"`
}

// LineConfig is the analyzer line geometry on the detector.
type LineConfig struct {
	Center float64 `yaml:"center"` // expected line row
	Slope  float64 `yaml:"slope"`  // energy offset per row away from center
}

// ThresholdConfig selects which pixel intensities are kept.
type ThresholdConfig struct {
	Discard  float64 `yaml:"discard"`
	Fraction float64 `yaml:"fraction"`
}

// ReferenceConfig enables the reference-line energy correction.
type ReferenceConfig struct {
	DeltaE   float64 `yaml:"delta_e"`
	DHoverDI float64 `yaml:"dh_over_di"`
}

// ResponseConfig enables response weighting.
type ResponseConfig struct {
	Samples    []float64 `yaml:"samples"`
	XIntercept float64   `yaml:"x_intercept"`
	CRX        float64   `yaml:"crx"`
	FNMiddle   float64   `yaml:"fn_middle"`
	XSlope     float64   `yaml:"x_slope"`
}

// SourceConfig describes the synthetic frames fed to the reducer.
type SourceConfig struct {
	Frames     int     `yaml:"frames"`
	Seed       int64   `yaml:"seed"`
	Center     float64 `yaml:"center"`
	FWHM       float64 `yaml:"fwhm"`
	Peak       float64 `yaml:"peak"`
	Background float64 `yaml:"background"`
}

// OutputConfig controls post-processing of the reduced spectrum.
type OutputConfig struct {
	Normalization string  `yaml:"normalization"` // frequency, denominator
	SmoothFWHM    float64 `yaml:"smooth_fwhm"`   // 0 disables smoothing
	Rebin         int     `yaml:"rebin"`         // channels per output bin
}

// Defaults returns a configuration that reduces a small synthetic
// detector around a single line.
func Defaults() *Config {
	return &Config{
		Axis: AxisConfig{Min: 9680, Step: 0.1, Bins: 100},
		Detector: DetectorConfig{
			Rows:         32,
			Cols:         256,
			EnergyOrigin: 9680,
			EnergyStep:   0.04,
			DeadPixels:   16,
		},
		Line:      LineConfig{Center: 16},
		Threshold: ThresholdConfig{Fraction: 0.0},
		Source: SourceConfig{
			Frames:     16,
			Seed:       1,
			Center:     9685,
			FWHM:       0.8,
			Peak:       40,
			Background: 0.5,
		},
		Output: OutputConfig{Normalization: "frequency", Rebin: 1},
	}
}

// Load reads a YAML configuration file on top of Defaults and validates
// the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data on top of Defaults and validates
// the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
