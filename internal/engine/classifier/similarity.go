package classifier

import (
	"math"

	"github.com/crimson-sun/bloomq/internal/model"
)

// unit returns v scaled to unit length in float64. A zero vector stays zero.
func unit(v []float32) []float64 {
	out := make([]float64, len(v))
	var norm float64
	for i, x := range v {
		out[i] = float64(x)
		norm += out[i] * out[i]
	}
	if norm == 0 {
		return out
	}
	inv := 1 / math.Sqrt(norm)
	for i := range out {
		out[i] *= inv
	}
	return out
}

// meanSimilarity is the arithmetic mean of cosine similarity between the
// unit vector q and each (already unit-length) reference vector. Vectors of
// mismatched length contribute 0.
func meanSimilarity(q []float64, ref model.ReferenceSet) float64 {
	if len(ref.Vectors) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ref.Vectors {
		sum += dot(q, r)
	}
	return sum / float64(len(ref.Vectors))
}

func dot(a []float64, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var s float64
	for i := range a {
		s += a[i] * float64(b[i])
	}
	return s
}
