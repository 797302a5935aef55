package conv

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-xrs/internal/testutil"
)

func BenchmarkConvolve(b *testing.B) {
	for _, size := range []struct{ signal, kernel int }{{512, 21}, {512, 81}, {4096, 81}} {
		signal := testutil.DeterministicNoise(1, 1, size.signal)
		kernel := testutil.DeterministicNoise(2, 1, size.kernel)
		b.Run(fmt.Sprintf("signal=%d_kernel=%d", size.signal, size.kernel), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = Convolve(signal, kernel)
			}
		})
	}
}

func BenchmarkCorrelate(b *testing.B) {
	for _, n := range []int{256, 2048} {
		a := testutil.DeterministicNoise(3, 1, n)
		r := testutil.DeterministicNoise(4, 1, n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = Correlate(a, r)
			}
		})
	}
}
