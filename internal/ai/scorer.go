package ai

import (
	"context"
	"fmt"
	"math"
)

// Embedder produces embedding vectors for texts.
type Embedder interface {
	Embeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Scorer grades a user's answer against the card's reference answer on a
// 0 to 100 scale.
type Scorer interface {
	Score(ctx context.Context, reference, answer string) (float64, error)
}

// ChatModel answers a single-turn prompt.
type ChatModel interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// SimilarityScorer scores answers by the cosine similarity of their
// embeddings against the reference answer.
type SimilarityScorer struct {
	embedder Embedder
}

func NewSimilarityScorer(embedder Embedder) *SimilarityScorer {
	return &SimilarityScorer{embedder: embedder}
}

func (s *SimilarityScorer) Score(ctx context.Context, reference, answer string) (float64, error) {
	vectors, err := s.embedder.Embeddings(ctx, []string{reference, answer})
	if err != nil {
		return 0, err
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("%w: expected 2 vectors, got %d", ErrUnavailable, len(vectors))
	}

	sim := cosine(vectors[0], vectors[1])
	score := sim * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

// cosine returns the cosine similarity of two vectors, or 0 when either
// has zero magnitude or the lengths differ.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
