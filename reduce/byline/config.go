package byline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-xrs/reduce/response"
)

// Threshold selects which pixel intensities are kept.
//
// A pixel is discarded when its intensity is below Discard, or below
// Fraction times the largest valid intensity of the same frame. Zero
// disables either test.
type Threshold struct {
	Discard  float64
	Fraction float64
}

func (t Threshold) validate() error {
	if math.IsNaN(t.Discard) || math.IsInf(t.Discard, 0) {
		return fmt.Errorf("%w: discard level must be finite: %g", ErrThreshold, t.Discard)
	}
	if !(t.Fraction >= 0 && t.Fraction <= 1) {
		return fmt.Errorf("%w: fraction must be in [0,1]: %g", ErrThreshold, t.Fraction)
	}
	return nil
}

// cut returns the intensity a pixel must reach given the frame maximum.
func (t Threshold) cut(frameMax float64) float64 {
	c := math.Inf(-1)
	if t.Discard != 0 {
		c = t.Discard
	}
	if t.Fraction > 0 && frameMax > 0 {
		c = math.Max(c, t.Fraction*frameMax)
	}
	return c
}

// ReferenceCorrection aligns the signal line with a reference line.
//
// Each pixel energy is lowered by DeltaE + DHoverDI*I, where I is the pixel
// intensity. DHoverDI models detectors whose line position drifts with
// count rate; leave it zero for a constant shift.
type ReferenceCorrection struct {
	DeltaE   float64
	DHoverDI float64
}

// Shift returns the energy shift for a pixel of intensity v.
func (r ReferenceCorrection) Shift(v float64) float64 {
	return r.DeltaE + r.DHoverDI*v
}

func (r ReferenceCorrection) validate() error {
	if math.IsNaN(r.DeltaE) || math.IsInf(r.DeltaE, 0) ||
		math.IsNaN(r.DHoverDI) || math.IsInf(r.DHoverDI, 0) {
		return fmt.Errorf("%w: coefficients must be finite", ErrReference)
	}
	return nil
}

// ResponseWeighting divides each pixel by the instrument response at its
// position along the analyzer line.
type ResponseWeighting struct {
	Curve   *response.Curve
	Mapping response.Mapping
}

func (w ResponseWeighting) validate() error {
	if w.Curve == nil {
		return fmt.Errorf("%w: response curve is nil", response.ErrInvalid)
	}
	return w.Mapping.Validate()
}

// Config selects the processing stages. A nil Reference or Response
// disables the corresponding stage.
type Config struct {
	Threshold Threshold
	Reference *ReferenceCorrection
	Response  *ResponseWeighting
}

// Validate checks every enabled stage.
func (c Config) Validate() error {
	if err := c.Threshold.validate(); err != nil {
		return err
	}
	if c.Reference != nil {
		if err := c.Reference.validate(); err != nil {
			return err
		}
	}
	if c.Response != nil {
		if err := c.Response.validate(); err != nil {
			return configError(err)
		}
	}
	return nil
}

// Mode is the combination of optional stages a Config enables.
type Mode int

const (
	ModePlain Mode = iota
	ModeReference
	ModeResponse
	ModeReferenceResponse
)

// Mode reports which optional stages are enabled.
func (c Config) Mode() Mode {
	switch {
	case c.Reference != nil && c.Response != nil:
		return ModeReferenceResponse
	case c.Reference != nil:
		return ModeReference
	case c.Response != nil:
		return ModeResponse
	default:
		return ModePlain
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeReference:
		return "reference"
	case ModeResponse:
		return "response"
	case ModeReferenceResponse:
		return "reference+response"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
