package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Rebin merges groups of n adjacent channels, starting offset channels
// into the data. Channel positions and values are averaged; errors, when
// given, are added in quadrature and divided by n. Trailing channels that
// do not fill a group are dropped. The offset is taken modulo n.
func Rebin(x, y, errs []float64, n, offset int) (xOut, yOut, errOut []float64, err error) {
	if len(x) != len(y) || (errs != nil && len(errs) != len(x)) {
		return nil, nil, nil, fmt.Errorf("%w: x=%d y=%d err=%d", ErrLengthMismatch, len(x), len(y), len(errs))
	}
	if n < 1 {
		return nil, nil, nil, fmt.Errorf("%w: group size %d", ErrInvalid, n)
	}

	offset %= n
	if offset < 0 {
		offset += n
	}
	groups := max(0, (len(x)-offset)/n)

	xOut = make([]float64, groups)
	yOut = make([]float64, groups)
	if errs != nil {
		errOut = make([]float64, groups)
	}
	fn := float64(n)
	for g := range groups {
		lo := offset + g*n
		hi := lo + n
		xOut[g] = floats.Sum(x[lo:hi]) / fn
		yOut[g] = floats.Sum(y[lo:hi]) / fn
		if errs != nil {
			errOut[g] = math.Sqrt(floats.Dot(errs[lo:hi], errs[lo:hi])) / fn
		}
	}
	return xOut, yOut, errOut, nil
}
