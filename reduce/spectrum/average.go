package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// WeightedAverage averages several spectra bin by bin, weighting each by
// its inverse variance 1/err^2. The returned error is 1/sqrt(sum of
// weights). Entries with a non-positive or non-finite error carry no
// weight; a bin where no entry has weight is NaN in both outputs.
func WeightedAverage(values, errs [][]float64) (avg, avgErr []float64, err error) {
	if errs == nil {
		return nil, nil, fmt.Errorf("%w: weighted average needs errors", ErrInvalid)
	}
	n, err := commonLength(values, errs)
	if err != nil {
		return nil, nil, err
	}

	avg = make([]float64, n)
	avgErr = make([]float64, n)
	column := make([]float64, len(values))
	weights := make([]float64, len(values))
	for k := range n {
		var total float64
		for s := range values {
			column[s] = values[s][k]
			weights[s] = 0
			if e := errs[s][k]; e > 0 && !math.IsInf(e, 0) {
				weights[s] = 1 / (e * e)
				total += weights[s]
			}
		}
		if total == 0 {
			avg[k], avgErr[k] = math.NaN(), math.NaN()
			continue
		}
		avg[k] = stat.Mean(column, weights)
		avgErr[k] = 1 / math.Sqrt(total)
	}
	return avg, avgErr, nil
}

// Sum adds several spectra bin by bin without weighting. The error is
// sqrt(|sum|), the counting error of the summed spectrum.
func Sum(values [][]float64) (sum, sumErr []float64, err error) {
	n, err := commonLength(values, nil)
	if err != nil {
		return nil, nil, err
	}
	sum = make([]float64, n)
	sumErr = make([]float64, n)
	for _, v := range values {
		for k, x := range v {
			sum[k] += x
		}
	}
	for k, s := range sum {
		sumErr[k] = math.Sqrt(math.Abs(s))
	}
	return sum, sumErr, nil
}

func commonLength(values, errs [][]float64) (int, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: no spectra", ErrInvalid)
	}
	if errs != nil && len(errs) != len(values) {
		return 0, fmt.Errorf("%w: %d spectra, %d error arrays", ErrLengthMismatch, len(values), len(errs))
	}
	n := len(values[0])
	for s, v := range values {
		if len(v) != n || (errs != nil && len(errs[s]) != n) {
			return 0, fmt.Errorf("%w: spectrum %d", ErrLengthMismatch, s)
		}
	}
	return n, nil
}
