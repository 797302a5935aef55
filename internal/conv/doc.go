// Package conv provides the linear convolution and cross-correlation
// routines used by the spectrum and line packages.
//
// Short kernels are convolved directly; longer ones go through a
// zero-padded FFT. Correlation is computed in the frequency domain and
// returned in lag order, so [LagFromIndex] maps a peak index back to a
// signed sample shift.
//
// # Usage
//
//	smoothed, err := conv.ConvolveMode(spectrum, kernel, conv.ModeSame)
//	corr, err := conv.Correlate(signal, reference)
//	idx, _ := conv.FindPeak(corr)
//	shift := float64(conv.LagFromIndex(idx, len(reference))) + conv.RefinePeak(corr, idx)
package conv
