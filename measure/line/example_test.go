package line_test

import (
	"fmt"

	"github.com/cwbudde/algo-xrs/internal/testutil"
	"github.com/cwbudde/algo-xrs/measure/line"
)

func ExampleShift() {
	x := testutil.Linspace(9680, 0.05, 200)
	calibration := testutil.Gaussian(x, 9685, 0.6, 1)
	current := testutil.Gaussian(x, 9685.4, 0.6, 1)

	deltaE, _ := line.Shift(x, current, calibration)
	fmt.Printf("DeltaE = %.2f eV\n", deltaE)

	// Output:
	// DeltaE = 0.40 eV
}

func ExampleFWHM() {
	width, center, _ := line.FWHM(
		[]float64{0, 1, 2, 3, 4, 5, 6},
		[]float64{0, 1, 3, 4, 3, 1, 0},
	)
	fmt.Println(width, center)

	// Output:
	// 3 3
}
