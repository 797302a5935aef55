package byline

import "math"

// minResponse is the smallest response magnitude a pixel may be divided by.
const minResponse = 1e-12

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// frameMax returns the largest finite intensity among valid pixels, or -Inf
// if there is none.
func frameMax(data []float64, valid []bool) float64 {
	m := math.Inf(-1)
	for idx, v := range data {
		if valid[idx] && finite(v) && v > m {
			m = v
		}
	}
	return m
}

// reduceFrame adds one row-major frame into part.
func (r *Reducer) reduceFrame(part *partial, data []float64) {
	px := r.pixels
	out := &part.acc
	rep := &part.report
	ref := r.cfg.Reference
	resp := r.cfg.Response

	cut := math.Inf(-1)
	if r.cfg.Threshold.Discard != 0 || r.cfg.Threshold.Fraction > 0 {
		cut = r.cfg.Threshold.cut(frameMax(data, px.Valid))
	}

	rep.Frames++
	for i := 0; i < px.Rows; i++ {
		row := i * px.Cols
		for j := 0; j < px.Cols; j++ {
			idx := row + j
			rep.Pixels++

			if !px.Valid[idx] {
				rep.Masked++
				continue
			}
			v := data[idx]
			if !finite(v) {
				rep.Degenerate++
				continue
			}
			if v < cut {
				rep.BelowThreshold++
				continue
			}

			e := px.Energy[idx]
			if math.IsNaN(e) {
				rep.Degenerate++
				continue
			}
			if ref != nil {
				e -= ref.Shift(v)
			}
			k, ok := r.axis.Bin(e)
			if !ok {
				rep.OutOfRange++
				continue
			}

			value := v
			variance := math.Abs(v)
			weight := 1.0
			if resp != nil {
				rv, ok := resp.Curve.At(resp.Mapping.Position(i, j))
				if !ok {
					rep.ResponseOutOfRange++
					continue
				}
				if !(math.Abs(rv) >= minResponse) {
					rep.Degenerate++
					continue
				}
				value = v / rv
				variance /= rv * rv
				weight = rv
			}

			out.Intensity[k] += value
			out.Variance[k] += variance
			out.Frequency[k]++
			out.Denominator[k] += weight
			rep.Accepted++
		}
	}
}
