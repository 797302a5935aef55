// Package response models the measured instrument response along the
// analyzer line and the mapping from detector pixels onto it.
package response

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned for a response curve that cannot be interpolated.
var ErrInvalid = errors.New("response: invalid response curve")

// Curve is a response function sampled at integer positions 0..Len()-1.
type Curve struct {
	samples []float64
}

// NewCurve copies samples into a Curve. At least two finite samples are
// required for linear interpolation.
func NewCurve(samples []float64) (*Curve, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalid, len(samples))
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: sample %d is not finite", ErrInvalid, i)
		}
	}
	c := &Curve{samples: make([]float64, len(samples))}
	copy(c.samples, samples)
	return c, nil
}

// Constant returns a curve of n samples all equal to v.
func Constant(n int, v float64) (*Curve, error) {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return NewCurve(s)
}

// Len returns the number of samples.
func (c *Curve) Len() int { return len(c.samples) }

// Samples returns a copy of the samples.
func (c *Curve) Samples() []float64 {
	out := make([]float64, len(c.samples))
	copy(out, c.samples)
	return out
}

// At linearly interpolates the curve at position p. Positions outside
// [0, Len()-1] are not extrapolated; ok is false for them.
func (c *Curve) At(p float64) (v float64, ok bool) {
	last := len(c.samples) - 1
	if !(p >= 0) || !(p <= float64(last)) {
		return 0, false
	}
	i := int(p)
	if i >= last {
		return c.samples[last], true
	}
	frac := p - float64(i)
	return c.samples[i] + frac*(c.samples[i+1]-c.samples[i]), true
}

// Mapping converts a pixel position into a position on the response curve.
//
// The line crosses row 0 at column XIntercept and leans by XSlope columns
// per row. A pixel's distance from the line along j, scaled by CRX curve
// samples per pixel, is measured from the curve sample FNMiddle.
type Mapping struct {
	XIntercept float64
	CRX        float64
	FNMiddle   float64
	XSlope     float64
}

// Position returns the curve position of pixel (i, j).
func (m Mapping) Position(i, j int) float64 {
	lineX := m.XIntercept + m.XSlope*float64(i)
	return m.FNMiddle + m.CRX*(float64(j)-lineX)
}

// Validate rejects mappings with non-finite coefficients or a zero scale.
func (m Mapping) Validate() error {
	for _, v := range [...]float64{m.XIntercept, m.CRX, m.FNMiddle, m.XSlope} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: mapping coefficients must be finite", ErrInvalid)
		}
	}
	if m.CRX == 0 {
		return fmt.Errorf("%w: mapping CRX must be nonzero", ErrInvalid)
	}
	return nil
}
