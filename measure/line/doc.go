// Package line measures emission and elastic lines in reduced spectra.
//
// The package provides:
//
//   - CenterOfMass: trapezoidal first moment of the line
//   - Centroid: intensity-weighted mean energy and spread
//   - FWHM: full width at half maximum, interpolated on both flanks
//   - Shift: energy offset of a line relative to a reference line,
//     by cross-correlation with sub-bin refinement
//
// Shift is how the reference correction of a reduction is obtained: the
// shift of the reference line between a calibration run and the current
// run is the DeltaE to subtract.
//
// # Usage
//
//	m, err := line.Analyze(s.Energy, s.Intensity)
//	fmt.Printf("E0 = %.3f eV, FWHM = %.3f eV\n", m.Center, m.FWHM)
//	deltaE, err := line.Shift(s.Energy, current, calibration)
package line
