package conv

import "fmt"

// Correlate computes the full cross-correlation of a and b in the
// frequency domain. The result has length len(a)+len(b)-1 and index k
// corresponds to lag k-(len(b)-1): a positive lag means a is b delayed.
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n, m := len(a), len(b)
	size := nextPowerOf2(n + m - 1)
	prod, plan, err := transformPair(a, b, size, true)
	if err != nil {
		return nil, err
	}

	circ := make([]complex128, size)
	if err := plan.Inverse(circ, prod); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// Non-negative lags sit at the front of the circular result, negative
	// lags wrap to the end.
	result := make([]float64, n+m-1)
	for i := range n {
		result[m-1+i] = real(circ[i])
	}
	for i := range m - 1 {
		result[i] = real(circ[size-m+1+i])
	}
	return result, nil
}

// FindPeak returns the index and value of the maximum of corr, or -1 for
// an empty slice.
func FindPeak(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}
	index, value = 0, corr[0]
	for i, v := range corr {
		if v > value {
			index, value = i, v
		}
	}
	return index, value
}

// RefinePeak fits a parabola through corr[index-1:index+2] and returns the
// fractional offset of its vertex from index, within [-0.5, 0.5]. Peaks on
// the boundary or on a flat top return 0.
func RefinePeak(corr []float64, index int) float64 {
	if index <= 0 || index >= len(corr)-1 {
		return 0
	}
	y0, y1, y2 := corr[index-1], corr[index], corr[index+1]
	denom := y0 - 2*y1 + y2
	if denom >= 0 {
		return 0
	}
	delta := 0.5 * (y0 - y2) / denom
	return max(-0.5, min(0.5, delta))
}

// LagFromIndex converts a correlation index to a lag for a second input
// of length lenB.
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}
