package line

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-xrs/internal/testutil"
)

func TestCenterOfMass(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"symmetric triangle", []float64{0, 1, 2, 3, 4}, []float64{0, 1, 2, 1, 0}, 2},
		{"zero area", []float64{0, 1, 2}, []float64{0, 0, 0}, 0},
		{"step", []float64{0, 1, 2}, []float64{1, 1, 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CenterOfMass(tt.x, tt.y)
			if err != nil {
				t.Fatalf("CenterOfMass error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("CenterOfMass = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInputErrors(t *testing.T) {
	if _, err := CenterOfMass([]float64{1}, []float64{1}); !errors.Is(err, ErrTooShort) {
		t.Fatalf("single sample error = %v, want ErrTooShort", err)
	}
	if _, _, err := FWHM([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch error = %v, want ErrLengthMismatch", err)
	}
	if _, err := Analyze(nil, nil); !errors.Is(err, ErrTooShort) {
		t.Fatalf("empty error = %v, want ErrTooShort", err)
	}
}

func TestFWHMGaussian(t *testing.T) {
	x := testutil.Linspace(-5, 0.01, 1001)
	y := testutil.Gaussian(x, 0.7, 1.2, 3)

	width, center, err := FWHM(x, y)
	if err != nil {
		t.Fatalf("FWHM error: %v", err)
	}
	if math.Abs(width-1.2) > 1e-4 {
		t.Fatalf("FWHM = %v, want 1.2", width)
	}
	if math.Abs(center-0.7) > 1e-4 {
		t.Fatalf("center = %v, want 0.7", center)
	}
}

func TestFWHMTriangle(t *testing.T) {
	// Half maximum 2 is crossed at x = 1.5 and x = 4.5.
	width, center, err := FWHM([]float64{0, 1, 2, 3, 4, 5, 6}, []float64{0, 1, 3, 4, 3, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if width != 3 || center != 3 {
		t.Fatalf("FWHM = %v at %v, want 3 at 3", width, center)
	}
}

func TestFWHMDescendingEnergies(t *testing.T) {
	width, center, err := FWHM([]float64{6, 5, 4, 3, 2, 1, 0}, []float64{0, 1, 3, 4, 3, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if width != 3 || center != 3 {
		t.Fatalf("FWHM = %v at %v, want 3 at 3", width, center)
	}
}

func TestFWHMNoCrossing(t *testing.T) {
	tests := []struct {
		name string
		y    []float64
	}{
		{"peak at edge", []float64{4, 3, 1, 0}},
		{"right flank stays high", []float64{0, 4, 3, 3}},
		{"all zero", []float64{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := FWHM([]float64{0, 1, 2, 3}, tt.y); !errors.Is(err, ErrNoCrossing) {
				t.Fatalf("error = %v, want ErrNoCrossing", err)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	mean, spread := Centroid([]float64{1, 2, 3}, []float64{1, -5, 1})
	if mean != 2 || spread != 1 {
		t.Fatalf("Centroid = %v +- %v, want 2 +- 1", mean, spread)
	}
}

func TestAnalyze(t *testing.T) {
	x := testutil.Linspace(0, 0.02, 501)
	y := testutil.Gaussian(x, 5, 0.8, 10)

	m, err := Analyze(x, y)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNearlyEqual(t, "Area", m.Area, 10, 1e-6)
	testutil.RequireNearlyEqual(t, "Center", m.Center, 5, 1e-9)
	testutil.RequireNearlyEqual(t, "PeakEnergy", m.PeakEnergy, 5, 1e-9)
	testutil.RequireNearlyEqual(t, "FWHM", m.FWHM, 0.8, 1e-3)
	testutil.RequireNearlyEqual(t, "Spread", m.Spread, 0.8/(2*math.Sqrt(2*math.Ln2)), 1e-3)
	testutil.RequireNearlyEqual(t, "HalfCenter", m.HalfCenter, 5, 1e-9)
}

func TestAnalyzeWithoutCrossing(t *testing.T) {
	m, err := Analyze([]float64{0, 1, 2}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if m.FWHM != 0 || m.Peak != 3 {
		t.Fatalf("Metrics = %+v, want FWHM 0 and Peak 3", m)
	}
}

func TestShift(t *testing.T) {
	x := testutil.Linspace(0, 0.05, 200)
	ref := testutil.Gaussian(x, 4, 0.5, 1)

	tests := []struct {
		name  string
		shift float64
		tol   float64
	}{
		{"none", 0, 1e-9},
		{"whole bins up", 0.3, 1e-9},
		{"whole bins down", -0.25, 1e-9},
		{"fractional", 0.32, 0.005},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := testutil.Gaussian(x, 4+tt.shift, 0.5, 1)
			got, err := Shift(x, sig, ref)
			if err != nil {
				t.Fatalf("Shift error: %v", err)
			}
			if math.Abs(got-tt.shift) > tt.tol {
				t.Fatalf("Shift = %v, want %v", got, tt.shift)
			}
		})
	}
}

func TestShiftErrors(t *testing.T) {
	if _, err := Shift([]float64{0, 1, 3}, []float64{0, 1, 0}, []float64{0, 1, 0}); !errors.Is(err, ErrNotUniform) {
		t.Fatalf("non-uniform error = %v, want ErrNotUniform", err)
	}
	if _, err := Shift([]float64{0, 1}, []float64{0}, []float64{0, 1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch error = %v, want ErrLengthMismatch", err)
	}
}
