package detector

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestValidate(t *testing.T) {
	energy := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	tests := []struct {
		name  string
		cal   Calibration
		valid bool
	}{
		{name: "no mask", cal: Calibration{Energy: energy}, valid: true},
		{name: "matching mask", cal: Calibration{Energy: energy, Mask: mat.NewDense(2, 3, nil)}, valid: true},
		{name: "nil energy", cal: Calibration{}},
		{name: "transposed mask", cal: Calibration{Energy: energy, Mask: mat.NewDense(3, 2, nil)}},
		{name: "nan line", cal: Calibration{Energy: energy, Line: LineGeometry{Center: math.NaN()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cal.Validate()
			if tt.valid && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrShape) {
				t.Fatalf("Validate() error = %v, want ErrShape", err)
			}
		})
	}
}

func TestFlattenStrided(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	sub := m.Slice(1, 3, 1, 3)

	got := Flatten(sub)
	want := []float64{5, 6, 8, 9}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Flatten()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFlattenTransposeUsesAt(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	got := Flatten(m.T())
	want := []float64{1, 4, 2, 5, 3, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Flatten(T)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPrepareAppliesLineSlopeAndMask(t *testing.T) {
	cal := Calibration{
		Energy: mat.NewDense(3, 2, []float64{
			10, 10,
			10, 10,
			10, 10,
		}),
		Mask: mat.NewDense(3, 2, []float64{
			1, 0,
			1, math.NaN(),
			2, 1,
		}),
		Line: LineGeometry{Center: 1, Slope: 0.5},
	}

	p, err := cal.Prepare()
	if err != nil {
		t.Fatal(err)
	}

	wantE := []float64{9.5, 9.5, 10, 10, 10.5, 10.5}
	wantV := []bool{true, false, true, false, true, true}
	for i := range wantE {
		if p.Energy[i] != wantE[i] {
			t.Fatalf("Energy[%d] = %v, want %v", i, p.Energy[i], wantE[i])
		}
		if p.Valid[i] != wantV[i] {
			t.Fatalf("Valid[%d] = %v, want %v", i, p.Valid[i], wantV[i])
		}
	}
	if n := p.ValidCount(); n != 4 {
		t.Fatalf("ValidCount() = %d, want 4", n)
	}
}
