package services

import (
	"context"
	stderrors "errors"
	"math"
	"strings"
	"time"

	"github.com/hailem/recallbox/internal/ai"
	"github.com/hailem/recallbox/internal/errors"
	"github.com/hailem/recallbox/internal/jobs"
	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
	"github.com/hailem/recallbox/internal/srs"
)

// ReviewResult is the outcome of one submitted review, returned to the
// client as a flat body.
type ReviewResult struct {
	Score            float64    `json:"score"`
	ReviewStage      string     `json:"review_stage"`
	ReviewsCompleted int        `json:"reviews_completed"`
	ReviewsRemaining int        `json:"reviews_remaining"`
	IsFullyReviewed  bool       `json:"is_fully_reviewed"`
	NextReviewAt     *time.Time `json:"next_review_at"`
}

// ReviewService handles answer scoring and review-state progression
type ReviewService interface {
	Submit(ctx context.Context, userID string, cardID int64, answer, note string) (*ReviewResult, error)
	Queue(ctx context.Context, userID string, folderID, deckID int64, limit int) ([]models.Card, error)
	History(ctx context.Context, userID string, cardID int64, limit int) ([]models.Review, error)
	Dashboard(ctx context.Context, userID string) (*models.DashboardStats, error)
}

type reviewService struct {
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	scorer     ai.Scorer
	jobQueue   jobs.JobQueue
	now        func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(cardRepo repository.CardRepository, reviewRepo repository.ReviewRepository, scorer ai.Scorer, jobQueue jobs.JobQueue) ReviewService {
	return &reviewService{
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
		scorer:     scorer,
		jobQueue:   jobQueue,
		now:        time.Now,
	}
}

// Submit scores the answer, advances the card's mastery state and records
// the review. An empty answer is rejected before any state changes.
func (s *reviewService) Submit(ctx context.Context, userID string, cardID int64, answer, note string) (*ReviewResult, error) {
	log := logger.FromContext(ctx)

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, errors.NewValidationError("answer", "must not be empty")
	}

	card, err := s.cardRepo.GetOwned(ctx, cardID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	if card.IsFullyReviewed {
		return nil, errors.NewConflictError("card is already fully reviewed")
	}

	score, err := s.scorer.Score(ctx, card.Answer, answer)
	if err != nil {
		if stderrors.Is(err, ai.ErrUnavailable) {
			return nil, errors.NewUnavailableError("answer scoring is temporarily unavailable", err)
		}
		return nil, errors.NewInternalError(err)
	}
	score = math.Round(score*10) / 10

	now := s.now().UTC()
	updated := srs.ApplyReview(*card, now)

	review := models.Review{
		CardID:     cardID,
		UserID:     userID,
		UserAnswer: answer,
		Note:       strings.TrimSpace(note),
		Score:      score,
		ReviewedAt: now,
	}
	if _, err = s.cardRepo.SubmitReview(ctx, updated, card.ReviewCount, review); err != nil {
		if stderrors.Is(err, repository.ErrStaleCard) {
			return nil, errors.NewConflictError("a review for this card was already submitted")
		}
		return nil, errors.NewInternalError(err)
	}

	if err := s.jobQueue.EnqueueStatsRefresh(userID); err != nil {
		log.Warn("failed to enqueue stats refresh: %v", err)
	}

	log.Info("review submitted: card_id=%d, score=%.1f, review_count=%d", cardID, score, updated.ReviewCount)
	return &ReviewResult{
		Score:            score,
		ReviewStage:      srs.StageLabel(updated.ReviewCount),
		ReviewsCompleted: updated.ReviewCount,
		ReviewsRemaining: srs.ReviewsRemaining(updated.ReviewCount),
		IsFullyReviewed:  updated.IsFullyReviewed,
		NextReviewAt:     updated.NextReviewAt,
	}, nil
}

// Queue returns the cards currently due, narrowed to a folder or a deck
// when those ids are non-zero.
func (s *reviewService) Queue(ctx context.Context, userID string, folderID, deckID int64, limit int) ([]models.Card, error) {
	scope := models.DueScope{UserID: userID, FolderID: folderID, DeckID: deckID}

	cards, err := s.cardRepo.DueCards(ctx, scope, s.now().UTC(), limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

func (s *reviewService) History(ctx context.Context, userID string, cardID int64, limit int) ([]models.Review, error) {
	card, err := s.cardRepo.GetOwned(ctx, cardID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	reviews, err := s.reviewRepo.HistoryForCard(ctx, cardID, userID, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// Dashboard buckets the user's pending reviews into today, this week and
// this month. The buckets are disjoint; unscheduled cards count as today.
func (s *reviewService) Dashboard(ctx context.Context, userID string) (*models.DashboardStats, error) {
	now := s.now().UTC()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	endOfWeek := endOfToday.AddDate(0, 0, 6)
	endOfMonth := endOfToday.AddDate(0, 0, 29)

	today, err := s.cardRepo.CountDueBetween(ctx, userID, nil, endOfToday)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	week, err := s.cardRepo.CountDueBetween(ctx, userID, &endOfToday, endOfWeek)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	month, err := s.cardRepo.CountDueBetween(ctx, userID, &endOfWeek, endOfMonth)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	return &models.DashboardStats{
		CardsDueToday:     today,
		CardsDueThisWeek:  week,
		CardsDueThisMonth: month,
	}, nil
}
