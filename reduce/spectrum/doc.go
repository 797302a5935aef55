// Package spectrum turns line accumulators into finished spectra and
// provides the post-processing applied to them: normalization, channel
// rebinning, gaussian smoothing and error-weighted averaging of several
// lines.
//
// # Usage
//
//	s, err := spectrum.Normalize(ax, acc, spectrum.ByFrequency)
//	x, y, e, err := spectrum.Rebin(s.Energy, s.Intensity, s.Error, 2, 0)
//	smooth, err := spectrum.Smooth(s.Energy, s.Intensity, 0.5)
package spectrum
