package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hailem/recallbox/internal/ai"
	"github.com/hailem/recallbox/internal/errors"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
	"github.com/hailem/recallbox/internal/services"
	"github.com/hailem/recallbox/internal/testutil/mocks"
)

func newReviewService() (services.ReviewService, *mocks.MockCardRepository, *mocks.MockReviewRepository, *mocks.MockScorer, *mocks.MockJobQueue) {
	cardRepo := new(mocks.MockCardRepository)
	reviewRepo := new(mocks.MockReviewRepository)
	scorer := new(mocks.MockScorer)
	jobQueue := new(mocks.MockJobQueue)
	svc := services.NewReviewService(cardRepo, reviewRepo, scorer, jobQueue)
	return svc, cardRepo, reviewRepo, scorer, jobQueue
}

func appErrStatus(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	return appErr.Status
}

func TestSubmitAdvancesCardAndStoresReview(t *testing.T) {
	svc, cardRepo, _, scorer, jobQueue := newReviewService()
	ctx := context.Background()

	card := &models.Card{ID: 7, DeckID: 1, Question: "q", Answer: "reference answer", ReviewCount: 1}
	cardRepo.On("GetOwned", mock.Anything, int64(7), "user-1").Return(card, nil)
	scorer.On("Score", mock.Anything, "reference answer", "my answer").Return(87.34, nil)
	cardRepo.On("SubmitReview", mock.Anything, mock.MatchedBy(func(c models.Card) bool {
		return c.ID == 7 && c.ReviewCount == 2 && !c.IsFullyReviewed && c.NextReviewAt != nil
	}), 1, mock.MatchedBy(func(r models.Review) bool {
		return r.CardID == 7 && r.UserAnswer == "my answer" && r.Score == 87.3
	})).Return(int64(42), nil)
	jobQueue.On("EnqueueStatsRefresh", "user-1").Return(nil)

	result, err := svc.Submit(ctx, "user-1", 7, "  my answer  ", "")
	require.NoError(t, err)
	assert.Equal(t, 87.3, result.Score)
	assert.Equal(t, 2, result.ReviewsCompleted)
	assert.Equal(t, "Second Review", result.ReviewStage)
	assert.Equal(t, 1, result.ReviewsRemaining)
	assert.False(t, result.IsFullyReviewed)
	assert.NotNil(t, result.NextReviewAt)

	cardRepo.AssertExpectations(t)
	jobQueue.AssertExpectations(t)
}

func TestSubmitThirdReviewMastersCard(t *testing.T) {
	svc, cardRepo, _, scorer, jobQueue := newReviewService()

	card := &models.Card{ID: 7, Answer: "a", ReviewCount: 2}
	cardRepo.On("GetOwned", mock.Anything, int64(7), "user-1").Return(card, nil)
	scorer.On("Score", mock.Anything, "a", "b").Return(10.0, nil)
	cardRepo.On("SubmitReview", mock.Anything, mock.MatchedBy(func(c models.Card) bool {
		return c.ReviewCount == 3 && c.IsFullyReviewed && c.NextReviewAt == nil
	}), 2, mock.Anything).Return(int64(1), nil)
	jobQueue.On("EnqueueStatsRefresh", "user-1").Return(nil)

	// A low score still completes the cycle.
	result, err := svc.Submit(context.Background(), "user-1", 7, "b", "")
	require.NoError(t, err)
	assert.True(t, result.IsFullyReviewed)
	assert.Equal(t, "Fully Reviewed", result.ReviewStage)
	assert.Equal(t, 3, result.ReviewsCompleted)
	assert.Zero(t, result.ReviewsRemaining)
	assert.Nil(t, result.NextReviewAt)
}

func TestSubmitRejectsEmptyAnswer(t *testing.T) {
	svc, cardRepo, _, _, _ := newReviewService()

	_, err := svc.Submit(context.Background(), "user-1", 7, "   ", "")
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))

	// Nothing was read or written.
	cardRepo.AssertNotCalled(t, "GetOwned", mock.Anything, mock.Anything, mock.Anything)
	cardRepo.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRejectsMasteredCard(t *testing.T) {
	svc, cardRepo, _, scorer, _ := newReviewService()

	card := &models.Card{ID: 7, Answer: "a", ReviewCount: 3, IsFullyReviewed: true}
	cardRepo.On("GetOwned", mock.Anything, int64(7), "user-1").Return(card, nil)

	_, err := svc.Submit(context.Background(), "user-1", 7, "answer", "")
	require.Error(t, err)
	assert.Equal(t, 409, appErrStatus(t, err))
	scorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitCardNotFound(t *testing.T) {
	svc, cardRepo, _, _, _ := newReviewService()

	cardRepo.On("GetOwned", mock.Anything, int64(99), "user-1").Return(nil, nil)

	_, err := svc.Submit(context.Background(), "user-1", 99, "answer", "")
	require.Error(t, err)
	assert.Equal(t, 404, appErrStatus(t, err))
}

func TestSubmitScorerUnavailable(t *testing.T) {
	svc, cardRepo, _, scorer, _ := newReviewService()

	card := &models.Card{ID: 7, Answer: "a", ReviewCount: 0}
	cardRepo.On("GetOwned", mock.Anything, int64(7), "user-1").Return(card, nil)
	scorer.On("Score", mock.Anything, "a", "answer").Return(0.0, ai.ErrUnavailable)

	_, err := svc.Submit(context.Background(), "user-1", 7, "answer", "")
	require.Error(t, err)
	assert.Equal(t, 503, appErrStatus(t, err))

	// The card must not advance when scoring fails.
	cardRepo.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitConcurrentSubmission(t *testing.T) {
	svc, cardRepo, _, scorer, jobQueue := newReviewService()

	card := &models.Card{ID: 7, Answer: "a", ReviewCount: 1}
	cardRepo.On("GetOwned", mock.Anything, int64(7), "user-1").Return(card, nil)
	scorer.On("Score", mock.Anything, "a", "answer").Return(70.0, nil)
	cardRepo.On("SubmitReview", mock.Anything, mock.Anything, 1, mock.Anything).
		Return(int64(0), repository.ErrStaleCard)

	_, err := svc.Submit(context.Background(), "user-1", 7, "answer", "")
	require.Error(t, err)
	assert.Equal(t, 409, appErrStatus(t, err))
	jobQueue.AssertNotCalled(t, "EnqueueStatsRefresh", mock.Anything)
}

func TestQueuePassesScope(t *testing.T) {
	svc, cardRepo, _, _, _ := newReviewService()

	cardRepo.On("DueCards", mock.Anything, models.DueScope{UserID: "user-1", FolderID: 3, DeckID: 9}, mock.Anything, 20).
		Return([]models.Card{{ID: 1}}, nil)

	cards, err := svc.Queue(context.Background(), "user-1", 3, 9, 20)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestQueueEmptyIsNotNil(t *testing.T) {
	svc, cardRepo, _, _, _ := newReviewService()

	cardRepo.On("DueCards", mock.Anything, mock.Anything, mock.Anything, 0).Return(nil, nil)

	cards, err := svc.Queue(context.Background(), "user-1", 0, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestDashboardBuckets(t *testing.T) {
	svc, cardRepo, _, _, _ := newReviewService()

	cardRepo.On("CountDueBetween", mock.Anything, "user-1", (*time.Time)(nil), mock.Anything).Return(2, nil)
	cardRepo.On("CountDueBetween", mock.Anything, "user-1", mock.MatchedBy(func(after *time.Time) bool {
		return after != nil
	}), mock.Anything).Return(5, nil).Once()
	cardRepo.On("CountDueBetween", mock.Anything, "user-1", mock.MatchedBy(func(after *time.Time) bool {
		return after != nil
	}), mock.Anything).Return(11, nil).Once()

	stats, err := svc.Dashboard(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CardsDueToday)
	assert.Equal(t, 5, stats.CardsDueThisWeek)
	assert.Equal(t, 11, stats.CardsDueThisMonth)
}
