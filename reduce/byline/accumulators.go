package byline

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
)

// Accumulators are the per-bin outputs of a reduction. They are owned by
// the caller and only ever added into.
type Accumulators struct {
	// Intensity is the summed (response-corrected) intensity per bin.
	Intensity []float64
	// Variance is the summed squared statistical error per bin.
	Variance []float64
	// Frequency counts the pixels that landed in each bin.
	Frequency []float64
	// Denominator sums the pixel weights per bin: 1 per pixel without
	// response weighting, the interpolated response value with it.
	Denominator []float64
}

// NewAccumulators returns zeroed accumulators for n bins.
func NewAccumulators(n int) *Accumulators {
	if n < 0 {
		n = 0
	}
	return &Accumulators{
		Intensity:   make([]float64, n),
		Variance:    make([]float64, n),
		Frequency:   make([]float64, n),
		Denominator: make([]float64, n),
	}
}

// Len returns the number of bins, or -1 if the four arrays disagree.
func (a *Accumulators) Len() int {
	n := len(a.Intensity)
	if len(a.Variance) != n || len(a.Frequency) != n || len(a.Denominator) != n {
		return -1
	}
	return n
}

// Reset zeroes all bins.
func (a *Accumulators) Reset() {
	clear(a.Intensity)
	clear(a.Variance)
	clear(a.Frequency)
	clear(a.Denominator)
}

// Add merges o into a bin by bin.
func (a *Accumulators) Add(o *Accumulators) error {
	if o == nil {
		return ErrNilAccumulators
	}
	n := a.Len()
	if n < 0 || o.Len() != n {
		return fmt.Errorf("%w: %d vs %d", ErrAccumulatorLength, n, o.Len())
	}
	a.add(o)
	return nil
}

func (a *Accumulators) add(o *Accumulators) {
	floats.Add(a.Intensity, o.Intensity)
	floats.Add(a.Variance, o.Variance)
	floats.Add(a.Frequency, o.Frequency)
	floats.Add(a.Denominator, o.Denominator)
}

// Clone returns a deep copy.
func (a *Accumulators) Clone() *Accumulators {
	return &Accumulators{
		Intensity:   append([]float64(nil), a.Intensity...),
		Variance:    append([]float64(nil), a.Variance...),
		Frequency:   append([]float64(nil), a.Frequency...),
		Denominator: append([]float64(nil), a.Denominator...),
	}
}

// Report counts what happened to the pixels of a reduction. Every scanned
// pixel is counted exactly once: either Accepted or in one discard class.
type Report struct {
	Frames             int
	Pixels             int
	Accepted           int
	Masked             int
	BelowThreshold     int
	OutOfRange         int
	ResponseOutOfRange int
	Degenerate         int
}

// Add merges o into r.
func (r *Report) Add(o Report) {
	r.Frames += o.Frames
	r.Pixels += o.Pixels
	r.Accepted += o.Accepted
	r.Masked += o.Masked
	r.BelowThreshold += o.BelowThreshold
	r.OutOfRange += o.OutOfRange
	r.ResponseOutOfRange += o.ResponseOutOfRange
	r.Degenerate += o.Degenerate
}

// Discarded returns the number of pixels that did not contribute.
func (r Report) Discarded() int {
	return r.Masked + r.BelowThreshold + r.OutOfRange + r.ResponseOutOfRange + r.Degenerate
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", r.Frames),
		slog.Int("pixels", r.Pixels),
		slog.Int("accepted", r.Accepted),
		slog.Int("masked", r.Masked),
		slog.Int("below_threshold", r.BelowThreshold),
		slog.Int("out_of_range", r.OutOfRange),
		slog.Int("response_out_of_range", r.ResponseOutOfRange),
		slog.Int("degenerate", r.Degenerate),
	)
}
