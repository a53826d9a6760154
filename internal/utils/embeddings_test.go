package utils

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	v := []float32{0.5, 0.25, 0.8}

	got, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("CosineSimilarity err: %v", err)
	}
	if math.Abs(float64(got)-1.0) > 1e-5 {
		t.Fatalf("expected similarity 1.0 for identical vectors, got %f", got)
	}
}

func TestCosineSimilarityOrthogonalVectors(t *testing.T) {
	got, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("CosineSimilarity err: %v", err)
	}
	if math.Abs(float64(got)) > 1e-5 {
		t.Fatalf("expected similarity 0 for orthogonal vectors, got %f", got)
	}
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	if _, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}); err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
}

func TestCosineSimilarityEmptyVector(t *testing.T) {
	if _, err := CosineSimilarity(nil, []float32{1}); err == nil {
		t.Fatal("expected error for empty vector")
	}
}

func TestCosineSimilarityZeroMagnitude(t *testing.T) {
	got, err := CosineSimilarity([]float32{0, 0}, []float32{1, 1})
	if err != nil {
		t.Fatalf("CosineSimilarity err: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected similarity 0 for zero-magnitude vector, got %f", got)
	}
}
