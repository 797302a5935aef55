package spectrum

import (
	"fmt"
	"math"

	approx "github.com/meko-christian/algo-approx"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-xrs/internal/conv"
	"github.com/cwbudde/algo-xrs/reduce/axis"
)

// fwhmToSigma converts a gaussian FWHM to its standard deviation.
var fwhmToSigma = 1 / (2 * math.Sqrt(2*math.Ln2))

// GaussianKernel returns a unit-sum gaussian of the given FWHM sampled at
// multiples of step, truncated at +-2 FWHM. The kernel has odd length and
// is symmetric about its middle sample.
func GaussianKernel(fwhm, step float64) ([]float64, error) {
	if !(fwhm > 0) || !(step > 0) || math.IsInf(fwhm, 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: fwhm=%v step=%v", ErrInvalid, fwhm, step)
	}

	half := int(math.Floor(2 * fwhm / step))
	kernel := make([]float64, 2*half+1)
	sigma := fwhm * fwhmToSigma
	for i := range kernel {
		d := float64(i-half) * step / sigma
		kernel[i] = approx.FastExp(-0.5 * d * d)
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel, nil
}

// Smooth convolves y with a unit-sum gaussian of the given FWHM. The x
// values must be uniformly spaced. Values beyond both ends are taken as
// constant copies of the first and last sample, so a flat spectrum stays
// flat. The result has the length of y.
func Smooth(x, y []float64, fwhm float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: x=%d y=%d", ErrLengthMismatch, len(x), len(y))
	}
	ax, err := axis.FromEnergies(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	kernel, err := GaussianKernel(fwhm, ax.Step)
	if err != nil {
		return nil, err
	}

	half := len(kernel) / 2
	padded := make([]float64, len(y)+2*half)
	for i := range padded {
		padded[i] = y[min(max(i-half, 0), len(y)-1)]
	}

	full, err := conv.Convolve(padded, kernel)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(y))
	copy(out, full[2*half:])
	return out, nil
}
