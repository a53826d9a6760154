package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"formrehberim.com/form-guide/internal/logger"
	"formrehberim.com/form-guide/internal/store"
	"formrehberim.com/form-guide/internal/utils"
)

const (
	// NumRelevantChunks is how many reference chunks a turn retrieves.
	NumRelevantChunks = 3
	// SimilarityThreshold is the minimum cosine score for a chunk to count
	// as relevant at all.
	SimilarityThreshold = 0.7
)

// ErrIndexUnavailable signals that the precomputed exercise index holds no
// usable chunks.
var ErrIndexUnavailable = errors.New("exercise index is not loaded")

// Embedder turns text into a similarity-search vector.
type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}

type ScoredChunk struct {
	Chunk      store.ExerciseChunk
	Similarity float32
}

// Retriever serves read-only top-k similarity lookups over the chunk cache
// loaded once at startup. It is safe for concurrent use.
type Retriever struct {
	embedder Embedder
	chunks   []store.ExerciseChunk
}

func NewRetriever(db *store.SQLiteStore, embedder Embedder) (*Retriever, error) {
	chunks, err := db.AllExerciseChunks()
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, ErrIndexUnavailable
	}

	slog.Info("retriever initialized", "chunks", len(chunks))
	return &Retriever{embedder: embedder, chunks: chunks}, nil
}

// Search returns up to k chunks relevant to query, best match first.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]ScoredChunk, error) {
	if len(r.chunks) == 0 {
		return nil, ErrIndexUnavailable
	}

	queryEmbedding, err := r.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scored := make([]ScoredChunk, 0, len(r.chunks))
	for _, chunk := range r.chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		similarity, err := utils.CosineSimilarity(queryEmbedding, chunk.Embedding)
		if err != nil {
			slog.Warn("failed to score chunk, skipping", "chunkID", chunk.ID, logger.Err(err))
			continue
		}
		if similarity >= SimilarityThreshold {
			scored = append(scored, ScoredChunk{Chunk: chunk, Similarity: similarity})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	if len(scored) == 0 {
		slog.Debug("no relevant chunks for query", "query", query, "threshold", SimilarityThreshold)
	}
	return scored, nil
}
