package distance

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	b = b[:len(a)]

	var s0, s1, s2, s3 float32
	i := 0
	for ; i+4 <= len(a); i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	for ; i < len(a); i++ {
		d := a[i] - b[i]
		s0 += d * d
	}

	return (s0 + s1) + (s2 + s3)
}

// SquaredL2Batch computes the squared L2 distance from query to every target.
// out must have length len(targets).
func SquaredL2Batch(query []float32, targets [][]float32, out []float32) {
	for i, t := range targets {
		out[i] = SquaredL2(query, t)
	}
}

// Mean returns the componentwise average of rows.
// An empty input yields the all-zero vector of length dim.
func Mean(rows [][]float32, dim int) []float32 {
	out := make([]float32, dim)
	if len(rows) == 0 {
		return out
	}

	for _, r := range rows {
		vek32.Add_Inplace(out, r[:dim])
	}
	vek32.MulNumber_Inplace(out, 1/float32(len(rows)))

	return out
}

// NonFinite returns the index of the first NaN or infinite component of v.
// It returns -1 if every component is finite.
func NonFinite(v []float32) int {
	for i, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return i
		}
	}
	return -1
}
