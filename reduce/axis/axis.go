// Package axis describes the uniform energy axis that detector pixels are
// binned onto.
//
// Bin k covers the half-open interval [Min + k*Step, Min + (k+1)*Step).
// A value lying exactly on a lower edge belongs to that bin, never to the
// one below it, even when the floating-point quotient (e-Min)/Step rounds
// down.
package axis

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned for axis parameters that cannot describe a bin grid.
var ErrInvalid = errors.New("axis: invalid energy axis")

// Axis is a uniform energy axis of Bins bins starting at Min.
type Axis struct {
	Min  float64
	Step float64
	Bins int
}

// New returns a validated axis.
func New(min, step float64, bins int) (Axis, error) {
	a := Axis{Min: min, Step: step, Bins: bins}
	if err := a.Validate(); err != nil {
		return Axis{}, err
	}
	return a, nil
}

// FromEnergies builds an axis from uniformly spaced bin-center energies.
// At least two energies are required to infer the step.
func FromEnergies(energies []float64) (Axis, error) {
	if len(energies) < 2 {
		return Axis{}, fmt.Errorf("%w: need at least 2 bin energies, got %d", ErrInvalid, len(energies))
	}
	step := (energies[len(energies)-1] - energies[0]) / float64(len(energies)-1)
	if !(step > 0) {
		return Axis{}, fmt.Errorf("%w: bin energies must increase", ErrInvalid)
	}
	tol := 1e-6 * step
	for k, e := range energies {
		want := energies[0] + float64(k)*step
		if math.Abs(e-want) > tol {
			return Axis{}, fmt.Errorf("%w: bin energy %d = %g is not uniformly spaced (want %g)", ErrInvalid, k, e, want)
		}
	}
	return New(energies[0]-step/2, step, len(energies))
}

// Validate reports whether the axis parameters are usable.
func (a Axis) Validate() error {
	if a.Bins <= 0 {
		return fmt.Errorf("%w: bins must be > 0: %d", ErrInvalid, a.Bins)
	}
	if !(a.Step > 0) || math.IsInf(a.Step, 0) {
		return fmt.Errorf("%w: step must be finite and > 0: %g", ErrInvalid, a.Step)
	}
	if math.IsNaN(a.Min) || math.IsInf(a.Min, 0) {
		return fmt.Errorf("%w: min must be finite: %g", ErrInvalid, a.Min)
	}
	return nil
}

// Edge returns the lower edge of bin k. Edge(Bins) is the upper edge of the axis.
func (a Axis) Edge(k int) float64 {
	return a.Min + float64(k)*a.Step
}

// Max returns the exclusive upper bound of the axis.
func (a Axis) Max() float64 {
	return a.Edge(a.Bins)
}

// Center returns the center energy of bin k.
func (a Axis) Center(k int) float64 {
	return a.Min + (float64(k)+0.5)*a.Step
}

// Bin returns the bin that contains e. The second result is false when e
// lies outside [Min, Max) or is not a number; out-of-range values are never
// clamped into the edge bins.
func (a Axis) Bin(e float64) (int, bool) {
	if !(e >= a.Min) || !(e < a.Max()) {
		return -1, false
	}
	k := int(math.Floor((e - a.Min) / a.Step))
	// The quotient can be off by one ulp either way; settle it against the
	// same edge formula that defines the interval.
	if k > 0 && e < a.Edge(k) {
		k--
	} else if k < a.Bins-1 && e >= a.Edge(k+1) {
		k++
	}
	if k < 0 || k >= a.Bins {
		return -1, false
	}
	return k, true
}

// Energies returns the bin-center energies.
func (a Axis) Energies() []float64 {
	if a.Bins <= 0 {
		return nil
	}
	out := make([]float64, a.Bins)
	for k := range out {
		out[k] = a.Center(k)
	}
	return out
}

// String implements fmt.Stringer.
func (a Axis) String() string {
	return fmt.Sprintf("[%g, %g) step %g (%d bins)", a.Min, a.Max(), a.Step, a.Bins)
}
