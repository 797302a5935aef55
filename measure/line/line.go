package line

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by line measurements.
var (
	ErrTooShort       = errors.New("line: need at least two samples")
	ErrLengthMismatch = errors.New("line: x and y lengths differ")
	ErrNoCrossing     = errors.New("line: no half-maximum crossing")
	ErrNotUniform     = errors.New("line: energies are not uniformly spaced")
)

// Metrics holds the measurements of a single line.
type Metrics struct {
	Area       float64 // trapezoidal integral
	Peak       float64 // maximum intensity
	PeakEnergy float64 // energy of the maximum sample
	Center     float64 // first moment
	Spread     float64 // intensity-weighted standard deviation
	FWHM       float64
	HalfCenter float64 // midpoint of the two half-maximum crossings
}

// Analyze measures the line y(x). The FWHM fields are left zero when the
// line does not fall below half maximum on both sides.
func Analyze(x, y []float64) (Metrics, error) {
	if err := check(x, y); err != nil {
		return Metrics{}, err
	}

	var m Metrics
	m.Area = trapz(x, y)
	peak := argmax(y)
	m.Peak, m.PeakEnergy = y[peak], x[peak]
	m.Center, _ = CenterOfMass(x, y)
	_, m.Spread = Centroid(x, y)

	width, center, err := FWHM(x, y)
	switch {
	case err == nil:
		m.FWHM, m.HalfCenter = width, center
	case !errors.Is(err, ErrNoCrossing):
		return Metrics{}, err
	}
	return m, nil
}

// CenterOfMass returns the first moment of y(x) using trapezoidal
// integration. A line of zero area has its center at 0.
func CenterOfMass(x, y []float64) (float64, error) {
	if err := check(x, y); err != nil {
		return 0, err
	}
	area := trapz(x, y)
	if area == 0 {
		return 0, nil
	}
	xy := make([]float64, len(x))
	for i := range x {
		xy[i] = x[i] * y[i]
	}
	return trapz(x, xy) / area, nil
}

// Centroid returns the mean and standard deviation of x weighted by the
// intensities y. Negative intensities are clipped to zero weight.
func Centroid(x, y []float64) (mean, spread float64) {
	w := make([]float64, len(y))
	for i, v := range y {
		w[i] = max(v, 0)
	}
	return stat.PopMeanStdDev(x, w)
}

// FWHM returns the full width at half maximum of y(x) and the midpoint of
// the two crossings. Crossings are located by linear interpolation
// between the last sample above half maximum and the first one below it,
// walking outward from the maximum. x may be ascending or descending.
func FWHM(x, y []float64) (width, center float64, err error) {
	if err := check(x, y); err != nil {
		return 0, 0, err
	}

	peak := argmax(y)
	half := y[peak] / 2
	if !(half > 0) {
		return 0, 0, fmt.Errorf("%w: non-positive maximum %v", ErrNoCrossing, y[peak])
	}

	left, okLeft := crossing(x, y, peak, half, -1)
	right, okRight := crossing(x, y, peak, half, +1)
	if !okLeft || !okRight {
		return 0, 0, ErrNoCrossing
	}
	return math.Abs(right - left), (left + right) / 2, nil
}

// crossing walks from the peak in direction dir and returns the
// interpolated x where y first drops below half.
func crossing(x, y []float64, peak int, half float64, dir int) (float64, bool) {
	for i := peak; i+dir >= 0 && i+dir < len(y); i += dir {
		if y[i+dir] < half {
			return interp(half, y[i], y[i+dir], x[i], x[i+dir]), true
		}
	}
	return 0, false
}

// interp returns the x at which the segment (x0, y0)-(x1, y1) reaches v.
func interp(v, y0, y1, x0, x1 float64) float64 {
	return x0 + (v-y0)*(x1-x0)/(y1-y0)
}

func trapz(x, y []float64) float64 {
	var s float64
	for i := 1; i < len(x); i++ {
		s += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
	}
	return s
}

func argmax(y []float64) int {
	best := 0
	for i, v := range y {
		if v > y[best] {
			best = i
		}
	}
	return best
}

func check(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return ErrTooShort
	}
	return nil
}
