package vector

import (
	"fmt"

	"github.com/viant/vec/search"
)

// Euclidean returns the L2 distance between a and b. Both vectors must have
// the same length; callers validate dimensions before reaching this point.
func Euclidean(a, b []float32) float32 {
	return search.Float32s(a).EuclideanDistance(b)
}

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns an error if the vectors have different lengths.
func L2Distance(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return Euclidean(a, b), nil
}
