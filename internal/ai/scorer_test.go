package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vectors [][]float32
	err     error
}

func (s *stubEmbedder) Embeddings(_ context.Context, _ []string) ([][]float32, error) {
	return s.vectors, s.err
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Scale does not matter.
	assert.InDelta(t, 1.0, cosine([]float32{2, 2}, []float32{5, 5}), 1e-9)

	// Degenerate inputs.
	assert.Zero(t, cosine(nil, nil))
	assert.Zero(t, cosine([]float32{1}, []float32{1, 2}))
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 1}))
}

func TestSimilarityScorerRange(t *testing.T) {
	ctx := context.Background()

	s := NewSimilarityScorer(&stubEmbedder{vectors: [][]float32{{1, 0}, {1, 0}}})
	score, err := s.Score(ctx, "ref", "answer")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, score, 1e-9)

	// Opposite vectors clamp to 0 instead of going negative.
	s = NewSimilarityScorer(&stubEmbedder{vectors: [][]float32{{1, 0}, {-1, 0}}})
	score, err = s.Score(ctx, "ref", "answer")
	require.NoError(t, err)
	assert.Zero(t, score)

	s = NewSimilarityScorer(&stubEmbedder{vectors: [][]float32{{1, 1}, {1, 0}}})
	score, err = s.Score(ctx, "ref", "answer")
	require.NoError(t, err)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 100.0)
}

func TestSimilarityScorerPropagatesUnavailable(t *testing.T) {
	s := NewSimilarityScorer(&stubEmbedder{err: ErrUnavailable})
	_, err := s.Score(context.Background(), "ref", "answer")
	assert.True(t, errors.Is(err, ErrUnavailable))
}
