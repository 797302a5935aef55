// Package byline reduces batches of 2D detector frames into 1D energy
// spectra summed per analyzer line.
//
// Every pixel of every frame goes through the same pipeline:
//
//  1. validity: pixels outside the mask, non-finite intensities and
//     intensities below the discard threshold are skipped
//  2. calibration: the pixel energy comes from the energy map, corrected by
//     the line geometry (row offset from the expected line center)
//  3. reference correction (optional): the energy is shifted by the drift
//     measured on a reference line, DeltaE + DHoverDI*I
//  4. binning: the corrected energy selects one half-open bin of the axis;
//     energies outside the axis are dropped, never clamped
//  5. response weighting (optional): the pixel is divided by the
//     interpolated instrument response at its position along the line
//  6. accumulation: intensity, variance, hit count and weight are added
//     to the bin
//
// # Usage
//
//	r, err := byline.New(cal, ax, byline.Config{
//		Threshold: byline.Threshold{Fraction: 0.01},
//	})
//	acc := byline.NewAccumulators(ax.Bins)
//	report, err := r.Accumulate(acc, frames...)
//
// Accumulation is purely additive: reducing two disjoint frame batches into
// the same accumulators equals reducing their union in one call. Frames are
// processed concurrently, but partial results are merged in frame order, so
// the output does not depend on the number of workers.
package byline
