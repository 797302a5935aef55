// Package detector holds the per-pixel calibration of a 2D spectrometer
// detector: the pixel-to-energy map, the validity mask and the geometry of
// the analyzer line imaged on it.
//
// Grids are gonum matrices in row-major ny×nx order (rows are i, columns
// are j). Dense matrices are read through their backing slice; any other
// mat.Matrix falls back to At.
package detector

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when a grid is missing, empty or has the wrong shape.
var ErrShape = errors.New("detector: grid shape mismatch")

// LineGeometry locates the analyzer line on the detector.
//
// Center is the row where the line is expected (hline). Slope is the energy
// drift per row away from Center (slopeline); it is added to the calibrated
// energy of every pixel.
type LineGeometry struct {
	Center float64
	Slope  float64
}

// Offset returns the energy correction for row i.
func (g LineGeometry) Offset(i int) float64 {
	if g.Slope == 0 {
		return 0
	}
	return g.Slope * (float64(i) - g.Center)
}

// Calibration couples the energy map with its validity mask.
type Calibration struct {
	// Energy is the calibrated energy of each pixel (mms).
	Energy mat.Matrix
	// Mask flags usable pixels; nonzero means valid. A nil mask accepts
	// every pixel.
	Mask mat.Matrix
	Line LineGeometry
}

// Dims returns the detector shape.
func (c Calibration) Dims() (rows, cols int) {
	if c.Energy == nil {
		return 0, 0
	}
	return c.Energy.Dims()
}

// Validate checks that the energy map is present and non-empty and that the
// mask, when given, has the same shape.
func (c Calibration) Validate() error {
	if c.Energy == nil {
		return fmt.Errorf("%w: energy map is nil", ErrShape)
	}
	r, cols := c.Energy.Dims()
	if r == 0 || cols == 0 {
		return fmt.Errorf("%w: energy map is empty (%dx%d)", ErrShape, r, cols)
	}
	if c.Mask != nil {
		if err := CheckShape(c.Mask, r, cols); err != nil {
			return fmt.Errorf("mask: %w", err)
		}
	}
	if math.IsNaN(c.Line.Center) || math.IsNaN(c.Line.Slope) {
		return fmt.Errorf("%w: line geometry must not be NaN", ErrShape)
	}
	return nil
}

// CheckShape reports an ErrShape error when m is nil or not rows×cols.
func CheckShape(m mat.Matrix, rows, cols int) error {
	if m == nil {
		return fmt.Errorf("%w: grid is nil", ErrShape)
	}
	r, c := m.Dims()
	if r != rows || c != cols {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrShape, r, c, rows, cols)
	}
	return nil
}

// Flatten returns the row-major contents of m. Dense matrices with a
// contiguous layout are returned without copying; the result must be
// treated as read-only.
func Flatten(m mat.Matrix) []float64 {
	r, c := m.Dims()
	if rm, ok := m.(mat.RawMatrixer); ok {
		raw := rm.RawMatrix()
		if raw.Stride == c && len(raw.Data) >= r*c {
			return raw.Data[:r*c]
		}
		out := make([]float64, r*c)
		for i := 0; i < r; i++ {
			copy(out[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
		}
		return out
	}
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j] = m.At(i, j)
		}
	}
	return out
}

// Pixels is a flattened, ready-to-scan view of a Calibration. Energies
// already include the line-geometry correction.
type Pixels struct {
	Rows, Cols int
	Energy     []float64
	Valid      []bool
}

// Prepare validates c and flattens it into a Pixels view. Valid reflects
// the mask only; energies are copied as they are, NaN included.
func (c Calibration) Prepare() (*Pixels, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rows, cols := c.Dims()
	src := Flatten(c.Energy)
	p := &Pixels{
		Rows:   rows,
		Cols:   cols,
		Energy: make([]float64, rows*cols),
		Valid:  make([]bool, rows*cols),
	}
	var mask []float64
	if c.Mask != nil {
		mask = Flatten(c.Mask)
	}
	for i := 0; i < rows; i++ {
		off := c.Line.Offset(i)
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			e := src[idx] + off
			p.Energy[idx] = e
			valid := true
			if mask != nil {
				v := mask[idx]
				valid = v != 0 && !math.IsNaN(v)
			}
			p.Valid[idx] = valid
		}
	}
	return p, nil
}

// ValidCount returns the number of usable pixels.
func (p *Pixels) ValidCount() int {
	n := 0
	for _, v := range p.Valid {
		if v {
			n++
		}
	}
	return n
}
