package utils

import (
	"fmt"
	"math"
)

// CosineSimilarity returns the cosine of the angle between two embedding
// vectors. The vectors must be non-empty and of equal dimension.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("vectors cannot be empty")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have the same dimension")
	}

	var dot, sumA, sumB float32
	for i := range a {
		dot += a[i] * b[i]
		sumA += a[i] * a[i]
		sumB += b[i] * b[i]
	}

	if sumA == 0 || sumB == 0 {
		return 0, nil
	}
	return dot / (float32(math.Sqrt(float64(sumA))) * float32(math.Sqrt(float64(sumB)))), nil
}
