package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) with a
// fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// Linspace returns n evenly spaced values from start with the given step.
func Linspace(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Gaussian samples an area-normalized gaussian of the given FWHM centered
// at center, scaled by area, at every x.
func Gaussian(x []float64, center, fwhm, area float64) []float64 {
	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))
	norm := area / (sigma * math.Sqrt(2*math.Pi))
	out := make([]float64, len(x))
	for i, v := range x {
		d := (v - center) / sigma
		out[i] = norm * math.Exp(-0.5*d*d)
	}
	return out
}
