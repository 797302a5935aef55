package config

import (
	"fmt"

	"github.com/cwbudde/algo-xrs/reduce/axis"
	"github.com/cwbudde/algo-xrs/reduce/byline"
	"github.com/cwbudde/algo-xrs/reduce/response"
	"github.com/cwbudde/algo-xrs/reduce/spectrum"
)

// Validate checks the configuration and fills in defaults for optional
// fields left empty.
func Validate(cfg *Config) error {
	if _, err := cfg.EnergyAxis(); err != nil {
		return fmt.Errorf("axis: %w", err)
	}

	if cfg.Detector.Rows <= 0 || cfg.Detector.Cols <= 0 {
		return fmt.Errorf("detector: rows and cols must be > 0, got %dx%d", cfg.Detector.Rows, cfg.Detector.Cols)
	}
	if cfg.Detector.DeadPixels < 0 {
		return fmt.Errorf("detector.dead_pixels must be >= 0")
	}

	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	if cfg.Source.Frames < 0 {
		return fmt.Errorf("source.frames must be >= 0")
	}

	if cfg.Output.Normalization == "" {
		cfg.Output.Normalization = "frequency"
	}
	if _, err := cfg.Normalization(); err != nil {
		return err
	}
	if cfg.Output.Rebin <= 0 {
		cfg.Output.Rebin = 1
	}
	if cfg.Output.SmoothFWHM < 0 {
		return fmt.Errorf("output.smooth_fwhm must be >= 0")
	}

	if _, err := cfg.Reduction(); err != nil {
		return err
	}
	return nil
}

// EnergyAxis returns the output energy axis.
func (c *Config) EnergyAxis() (axis.Axis, error) {
	return axis.New(c.Axis.Min, c.Axis.Step, c.Axis.Bins)
}

// Reduction translates the configuration into reducer settings. Absent
// reference and response sections disable those stages.
func (c *Config) Reduction() (byline.Config, error) {
	out := byline.Config{
		Threshold: byline.Threshold{
			Discard:  c.Threshold.Discard,
			Fraction: c.Threshold.Fraction,
		},
	}
	if c.Reference != nil {
		out.Reference = &byline.ReferenceCorrection{
			DeltaE:   c.Reference.DeltaE,
			DHoverDI: c.Reference.DHoverDI,
		}
	}
	if c.Response != nil {
		curve, err := response.NewCurve(c.Response.Samples)
		if err != nil {
			return byline.Config{}, fmt.Errorf("response: %w", err)
		}
		out.Response = &byline.ResponseWeighting{
			Curve: curve,
			Mapping: response.Mapping{
				XIntercept: c.Response.XIntercept,
				CRX:        c.Response.CRX,
				FNMiddle:   c.Response.FNMiddle,
				XSlope:     c.Response.XSlope,
			},
		}
	}
	if err := out.Validate(); err != nil {
		return byline.Config{}, err
	}
	return out, nil
}

// Options returns the reducer options implied by the configuration.
func (c *Config) Options() []byline.Option {
	if c.Workers > 0 {
		return []byline.Option{byline.WithWorkers(c.Workers)}
	}
	return nil
}

// Normalization returns the configured spectrum normalization.
func (c *Config) Normalization() (spectrum.Normalization, error) {
	switch c.Output.Normalization {
	case "frequency":
		return spectrum.ByFrequency, nil
	case "denominator":
		return spectrum.ByDenominator, nil
	default:
		return 0, fmt.Errorf("output.normalization must be frequency or denominator, got %q", c.Output.Normalization)
	}
}
