package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-xrs/reduce/axis"
	"github.com/cwbudde/algo-xrs/reduce/byline"
)

// Errors returned by the spectrum functions.
var (
	ErrLengthMismatch = errors.New("spectrum: length mismatch")
	ErrInvalid        = errors.New("spectrum: invalid parameter")
)

// Normalization selects the per-bin divisor used by Normalize.
type Normalization int

const (
	// ByFrequency divides by the number of pixels that landed in the bin.
	ByFrequency Normalization = iota
	// ByDenominator divides by the summed pixel weights, which equals the
	// frequency unless response weighting was on.
	ByDenominator
)

func (n Normalization) String() string {
	switch n {
	case ByFrequency:
		return "frequency"
	case ByDenominator:
		return "denominator"
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

// Spectrum is a normalized line spectrum on the bin centers of an axis.
type Spectrum struct {
	Energy    []float64
	Intensity []float64
	Error     []float64
	// Empty marks bins that received no pixel; their intensity and error
	// are zero.
	Empty []bool
}

// Len returns the number of bins.
func (s *Spectrum) Len() int { return len(s.Energy) }

// Normalize computes the per-bin mean intensity I/N and its error
// sqrt(Var)/N, with N chosen by the normalization mode.
func Normalize(ax axis.Axis, acc *byline.Accumulators, by Normalization) (*Spectrum, error) {
	if err := ax.Validate(); err != nil {
		return nil, err
	}
	if acc == nil || acc.Len() != ax.Bins {
		return nil, fmt.Errorf("%w: accumulators do not match %d bins", ErrLengthMismatch, ax.Bins)
	}

	var divisor []float64
	switch by {
	case ByFrequency:
		divisor = acc.Frequency
	case ByDenominator:
		divisor = acc.Denominator
	default:
		return nil, fmt.Errorf("%w: normalization %v", ErrInvalid, by)
	}

	n := ax.Bins
	inv := make([]float64, n)
	sigma := make([]float64, n)
	empty := make([]bool, n)
	for k, d := range divisor {
		if d == 0 {
			empty[k] = true
			continue
		}
		inv[k] = 1 / d
		sigma[k] = math.Sqrt(math.Abs(acc.Variance[k]))
	}

	s := &Spectrum{
		Energy:    ax.Energies(),
		Intensity: make([]float64, n),
		Error:     make([]float64, n),
		Empty:     empty,
	}
	vecmath.MulBlock(s.Intensity, acc.Intensity, inv)
	vecmath.MulBlock(s.Error, sigma, inv)
	return s, nil
}
