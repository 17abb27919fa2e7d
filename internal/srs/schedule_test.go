package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/srs"
)

func TestApplyReview_FirstReview(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	card := models.Card{ReviewCount: 0}

	updated := srs.ApplyReview(card, now)

	assert.Equal(t, 1, updated.ReviewCount, "review count should increment")
	assert.False(t, updated.IsFullyReviewed)
	require.NotNil(t, updated.NextReviewAt)
	assert.Equal(t, now.AddDate(0, 0, 7), *updated.NextReviewAt, "second review comes after a week")
	require.NotNil(t, updated.LastReviewedAt)
	assert.Equal(t, now, *updated.LastReviewedAt)
}

func TestApplyReview_SecondReview(t *testing.T) {
	now := time.Date(2026, 3, 8, 9, 30, 0, 0, time.UTC)
	card := models.Card{ReviewCount: 1}

	updated := srs.ApplyReview(card, now)

	assert.Equal(t, 2, updated.ReviewCount)
	assert.False(t, updated.IsFullyReviewed)
	require.NotNil(t, updated.NextReviewAt)
	assert.Equal(t, now.AddDate(0, 0, 21), *updated.NextReviewAt, "third review comes after three weeks")
}

func TestApplyReview_ReachesMastery(t *testing.T) {
	now := time.Now().UTC()
	card := models.Card{ReviewCount: 2}

	updated := srs.ApplyReview(card, now)

	assert.Equal(t, 3, updated.ReviewCount)
	assert.True(t, updated.IsFullyReviewed, "third review should master the card")
	assert.Nil(t, updated.NextReviewAt, "mastered cards are no longer scheduled")
	require.NotNil(t, updated.LastReviewedAt)
}

func TestApplyReview_MonotonicMastery(t *testing.T) {
	// Review counts never decrease and mastery flips exactly once.
	now := time.Now().UTC()
	card := models.Card{}
	prevCount := 0

	for i := 0; i < srs.MasteryThreshold; i++ {
		card = srs.ApplyReview(card, now)
		assert.Greater(t, card.ReviewCount, prevCount)
		prevCount = card.ReviewCount

		if card.ReviewCount < srs.MasteryThreshold {
			assert.False(t, card.IsFullyReviewed)
		} else {
			assert.True(t, card.IsFullyReviewed)
		}
	}
}

func TestApplyReview_NextReviewNeverBeforeLastReview(t *testing.T) {
	// A card reviewed long past its due date must still be scheduled
	// forward from the review time, not from creation.
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.AddDate(0, 6, 0)
	first := srs.FirstReviewAt(created)
	card := models.Card{CreatedAt: created, NextReviewAt: &first}

	updated := srs.ApplyReview(card, now)

	require.NotNil(t, updated.NextReviewAt)
	require.NotNil(t, updated.LastReviewedAt)
	assert.False(t, updated.NextReviewAt.Before(*updated.LastReviewedAt))
}

func TestIsDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		card models.Card
		want bool
	}{
		{"nil next review is due immediately", models.Card{}, true},
		{"past next review is due", models.Card{NextReviewAt: &past}, true},
		{"boundary is inclusive", models.Card{NextReviewAt: &now}, true},
		{"future next review is not due", models.Card{NextReviewAt: &future}, false},
		{"mastered card is never due", models.Card{IsFullyReviewed: true, ReviewCount: 3}, false},
		{"mastered card with past next review is never due", models.Card{IsFullyReviewed: true, ReviewCount: 3, NextReviewAt: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, srs.IsDue(tt.card, now))
		})
	}
}

func TestStageOf(t *testing.T) {
	assert.Equal(t, srs.StageLearning, srs.StageOf(0))
	assert.Equal(t, srs.StageLearning, srs.StageOf(2))
	assert.Equal(t, srs.StageMastered, srs.StageOf(3))
	assert.Equal(t, srs.StageMastered, srs.StageOf(10))
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "New", srs.StageLabel(0))
	assert.Equal(t, "First Review", srs.StageLabel(1))
	assert.Equal(t, "Second Review", srs.StageLabel(2))
	assert.Equal(t, "Fully Reviewed", srs.StageLabel(3))
	assert.Equal(t, "Fully Reviewed", srs.StageLabel(7))
}

func TestReviewsRemaining(t *testing.T) {
	assert.Equal(t, 3, srs.ReviewsRemaining(0))
	assert.Equal(t, 1, srs.ReviewsRemaining(2))
	assert.Equal(t, 0, srs.ReviewsRemaining(3))
	assert.Equal(t, 0, srs.ReviewsRemaining(5))
}
