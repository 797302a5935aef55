package byline

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-xrs/internal/synth"
	"github.com/cwbudde/algo-xrs/reduce/axis"
	"github.com/cwbudde/algo-xrs/reduce/response"
)

func BenchmarkAccumulate(b *testing.B) {
	const rows, cols = 256, 512
	cal := synth.LinearDetector(rows, cols, 9680, 0.02)
	ax, err := axis.New(9680, 0.1, 103)
	if err != nil {
		b.Fatal(err)
	}
	frames := synth.PoissonFrames(1, 8, rows, cols, 20)

	curve, err := response.NewCurve([]float64{0.8, 1.0, 1.1, 1.0, 0.8})
	if err != nil {
		b.Fatal(err)
	}
	modes := map[string]Config{
		"plain": {},
		"reference+response": {
			Reference: &ReferenceCorrection{DeltaE: 0.05, DHoverDI: 1e-4},
			Response: &ResponseWeighting{
				Curve:   curve,
				Mapping: response.Mapping{CRX: 4.0 / (cols - 1)},
			},
		},
	}

	for name, cfg := range modes {
		for _, workers := range []int{1, 4} {
			r, err := New(cal, ax, cfg, WithWorkers(workers))
			if err != nil {
				b.Fatal(err)
			}
			acc := NewAccumulators(ax.Bins)
			b.Run(fmt.Sprintf("%s/workers=%d", name, workers), func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(frames) * rows * cols * 8))
				for i := 0; i < b.N; i++ {
					if _, err := r.Accumulate(acc, frames...); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
