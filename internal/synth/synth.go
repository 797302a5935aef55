// Package synth generates deterministic detector calibrations and frames
// for tests, benchmarks and the xrsreduce demo.
package synth

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xrs/reduce/detector"
)

// LinearDetector returns a calibration whose energy grows by de per column,
// starting at e0, identical on every row. No mask is set.
func LinearDetector(rows, cols int, e0, de float64) detector.Calibration {
	energy := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			energy.Set(i, j, e0+de*float64(j))
		}
	}
	return detector.Calibration{Energy: energy}
}

// DeadPixelMask returns a rows×cols mask of ones with dead distinct pixels
// set to zero at seeded random positions.
func DeadPixelMask(rows, cols, dead int, seed int64) *mat.Dense {
	n := rows * cols
	data := make([]float64, n)
	for i := range data {
		data[i] = 1
	}
	if dead > n {
		dead = n
	}
	rng := rand.New(rand.NewSource(seed))
	for _, idx := range rng.Perm(n)[:dead] {
		data[idx] = 0
	}
	return mat.NewDense(rows, cols, data)
}

// NoisyFrames returns n frames of uniform noise in [0, scale).
func NoisyFrames(seed int64, n, rows, cols int, scale float64) []mat.Matrix {
	rng := rand.New(rand.NewSource(seed))
	out := make([]mat.Matrix, n)
	for s := range out {
		data := make([]float64, rows*cols)
		for i := range data {
			data[i] = rng.Float64() * scale
		}
		out[s] = mat.NewDense(rows, cols, data)
	}
	return out
}

// PoissonFrames returns n frames of Poisson counts with a constant mean.
func PoissonFrames(seed int64, n, rows, cols int, mean float64) []mat.Matrix {
	rng := rand.New(rand.NewSource(seed))
	out := make([]mat.Matrix, n)
	for s := range out {
		data := make([]float64, rows*cols)
		for i := range data {
			data[i] = Poisson(rng, mean)
		}
		out[s] = mat.NewDense(rows, cols, data)
	}
	return out
}

// Line describes a gaussian emission line on a flat background.
type Line struct {
	Center     float64 // same units as the energy map
	FWHM       float64
	Peak       float64 // counts per pixel at Center
	Background float64 // counts per pixel
}

// Mean returns the expected counts of a pixel at energy e.
func (l Line) Mean(e float64) float64 {
	if l.FWHM <= 0 {
		return l.Background
	}
	sigma := l.FWHM / (2 * math.Sqrt(2*math.Ln2))
	d := (e - l.Center) / sigma
	return l.Background + l.Peak*math.Exp(-0.5*d*d)
}

// LineFrames returns n frames of Poisson counts drawn from line, using the
// calibrated energy of every pixel of cal.
func LineFrames(seed int64, n int, cal detector.Calibration, line Line) []mat.Matrix {
	rows, cols := cal.Dims()
	energy := detector.Flatten(cal.Energy)
	means := make([]float64, len(energy))
	for i, e := range energy {
		means[i] = line.Mean(e)
	}

	rng := rand.New(rand.NewSource(seed))
	out := make([]mat.Matrix, n)
	for s := range out {
		data := make([]float64, rows*cols)
		for i, m := range means {
			data[i] = Poisson(rng, m)
		}
		out[s] = mat.NewDense(rows, cols, data)
	}
	return out
}

// Poisson draws a Poisson-distributed count with mean lambda. Small means
// use Knuth's multiplication method, large ones a rounded normal
// approximation.
func Poisson(rng *rand.Rand, lambda float64) float64 {
	if !(lambda > 0) {
		return 0
	}
	if lambda > 30 {
		v := math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64())
		return math.Max(v, 0)
	}
	l := math.Exp(-lambda)
	k := 0.0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}
