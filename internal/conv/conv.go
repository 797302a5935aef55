package conv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Mode specifies the output length of a convolution.
type Mode int

const (
	// ModeFull returns the full result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input,
	// centred on the kernel.
	ModeSame
)

// directThreshold is the kernel length below which Convolve stays in
// the time domain.
const directThreshold = 32

// Direct performs time-domain linear convolution of a and b.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			result[i+j] += av * bv
		}
	}
	return result, nil
}

// FFT performs linear convolution of a and b through a zero-padded
// complex FFT of the next power-of-two size.
func FFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n := len(a) + len(b) - 1
	prod, plan, err := transformPair(a, b, nextPowerOf2(n), false)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(prod))
	if err := plan.Inverse(out, prod); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	result := make([]float64, n)
	for i := range result {
		result[i] = real(out[i])
	}
	return result, nil
}

// Convolve computes the full linear convolution of a and b, choosing
// the direct or FFT path from the shorter input's length.
func Convolve(a, b []float64) ([]float64, error) {
	if min(len(a), len(b)) < directThreshold {
		return Direct(a, b)
	}
	return FFT(a, b)
}

// ConvolveMode computes convolution trimmed to the requested mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}
	return trimToMode(full, len(a), len(b), mode), nil
}

// transformPair returns FFT(a) * FFT(b), or FFT(a) * conj(FFT(b)) when
// conjugate is set, together with the plan used.
func transformPair(a, b []float64, size int, conjugate bool) ([]complex128, *algofft.Plan[complex128], error) {
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	aFreq, err := forward(plan, a, size)
	if err != nil {
		return nil, nil, err
	}
	bFreq, err := forward(plan, b, size)
	if err != nil {
		return nil, nil, err
	}

	for i := range aFreq {
		bv := bFreq[i]
		if conjugate {
			bv = complex(real(bv), -imag(bv))
		}
		aFreq[i] *= bv
	}
	return aFreq, plan, nil
}

func forward(plan *algofft.Plan[complex128], x []float64, size int) ([]complex128, error) {
	padded := make([]complex128, size)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}
	freq := make([]complex128, size)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	return freq, nil
}

func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	default:
		return full
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
