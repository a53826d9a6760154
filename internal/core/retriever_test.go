package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"formrehberim.com/form-guide/internal/store"
)

type fixedEmbedder struct {
	vec []float32
}

func (f *fixedEmbedder) GetEmbedding(context.Context, string) ([]float32, error) {
	return f.vec, nil
}

func TestSearchRanksFiltersAndLimits(t *testing.T) {
	r := &Retriever{
		embedder: &fixedEmbedder{vec: []float32{1, 0}},
		chunks: []store.ExerciseChunk{
			{ID: 1, Exercise: "squat", Content: "exact", Embedding: []float32{1, 0}},
			{ID: 2, Exercise: "plank", Content: "close", Embedding: []float32{0.8, 0.6}},
			{ID: 3, Exercise: "lunge", Content: "unrelated", Embedding: []float32{0, 1}},
			{ID: 4, Exercise: "situp", Content: "middling", Embedding: []float32{0.75, 0.661}},
			{ID: 5, Exercise: "broken", Content: "no embedding"},
		},
	}

	docs, err := r.Search(context.Background(), "how to squat", 2)
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected k=2 results, got %d", len(docs))
	}
	if docs[0].Chunk.ID != 1 || docs[1].Chunk.ID != 2 {
		t.Fatalf("results out of relevance order: %v, %v", docs[0].Chunk.ID, docs[1].Chunk.ID)
	}
	if docs[0].Similarity < docs[1].Similarity {
		t.Fatal("scores must be descending")
	}
}

func TestSearchBelowThresholdReturnsNothing(t *testing.T) {
	r := &Retriever{
		embedder: &fixedEmbedder{vec: []float32{1, 0}},
		chunks: []store.ExerciseChunk{
			{ID: 1, Exercise: "lunge", Content: "unrelated", Embedding: []float32{0, 1}},
		},
	}

	docs, err := r.Search(context.Background(), "leg exercises", 3)
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no results below the threshold, got %d", len(docs))
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	r := &Retriever{embedder: &fixedEmbedder{vec: []float32{1}}}
	if _, err := r.Search(context.Background(), "anything", 3); !errors.Is(err, ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestNewRetrieverRequiresIngestedChunks(t *testing.T) {
	dbStore, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore err: %v", err)
	}
	defer dbStore.Close()

	if _, err := NewRetriever(dbStore, &fixedEmbedder{}); !errors.Is(err, ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable for empty index, got %v", err)
	}
}

func TestReformulateEmptyHistoryPassthrough(t *testing.T) {
	// No model call happens when there is no history to resolve, so a
	// client-less service is fine here.
	s := &LLMService{}

	query, err := s.Reformulate(context.Background(), nil, "How is Squat performed?")
	if err != nil {
		t.Fatalf("Reformulate err: %v", err)
	}
	if query != "How is Squat performed?" {
		t.Fatalf("expected passthrough, got %q", query)
	}
}
