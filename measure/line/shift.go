package line

import (
	"fmt"

	"github.com/cwbudde/algo-xrs/internal/conv"
	"github.com/cwbudde/algo-xrs/reduce/axis"
)

// Shift returns the energy by which signal is displaced from reference,
// both sampled on the ascending uniform energies x. A positive shift means the
// signal sits at higher energy. The integer lag comes from the peak of
// the cross-correlation and is refined by a parabola through its
// neighbours. Both inputs should be background-subtracted.
func Shift(x, signal, reference []float64) (float64, error) {
	if len(signal) != len(x) || len(reference) != len(x) {
		return 0, fmt.Errorf("%w: x=%d signal=%d reference=%d", ErrLengthMismatch, len(x), len(signal), len(reference))
	}
	ax, err := axis.FromEnergies(x)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotUniform, err)
	}

	corr, err := conv.Correlate(signal, reference)
	if err != nil {
		return 0, err
	}
	idx, _ := conv.FindPeak(corr)
	lag := float64(conv.LagFromIndex(idx, len(reference))) + conv.RefinePeak(corr, idx)
	return lag * ax.Step, nil
}
