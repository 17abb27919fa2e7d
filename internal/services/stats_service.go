package services

import (
	"context"
	"time"

	"github.com/hailem/recallbox/internal/errors"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
	"github.com/hailem/recallbox/internal/srs"
)

// StatsService handles review analytics
type StatsService interface {
	General(ctx context.Context, userID string) (*models.GeneralStats, error)
	Folder(ctx context.Context, folderID int64, userID string) (*models.FolderStats, error)
	Deck(ctx context.Context, deckID int64, userID string) (*models.DeckStats, error)
}

type statsService struct {
	folderRepo repository.FolderRepository
	deckRepo   repository.DeckRepository
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	statsRepo  repository.StatsRepository
	now        func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(
	folderRepo repository.FolderRepository,
	deckRepo repository.DeckRepository,
	cardRepo repository.CardRepository,
	reviewRepo repository.ReviewRepository,
	statsRepo repository.StatsRepository,
) StatsService {
	return &statsService{
		folderRepo: folderRepo,
		deckRepo:   deckRepo,
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
		statsRepo:  statsRepo,
		now:        time.Now,
	}
}

// aggregates computes average score, mastered-card count and streak for a
// scope directly from the underlying tables.
func (s *statsService) aggregates(ctx context.Context, scope models.DueScope) (float64, int, int, error) {
	avg, err := s.reviewRepo.AverageScore(ctx, scope)
	if err != nil {
		return 0, 0, 0, err
	}
	mastered, err := s.cardRepo.CountByMastery(ctx, scope, true)
	if err != nil {
		return 0, 0, 0, err
	}
	days, err := s.reviewRepo.ReviewDays(ctx, scope)
	if err != nil {
		return 0, 0, 0, err
	}
	return avg, mastered, srs.StreakFromDays(days, s.now().UTC()), nil
}

// General returns account-wide performance. The scalar aggregates come
// from the stats cache when one exists; the accuracy graph is always
// read live, keyed by folder name.
func (s *statsService) General(ctx context.Context, userID string) (*models.GeneralStats, error) {
	stats := &models.GeneralStats{}

	cache, err := s.statsRepo.GetCache(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if cache != nil {
		stats.AverageScore = cache.AverageScore
		stats.FullyReviewedCards = cache.FullyReviewedCards
		stats.StudyStreak = cache.StudyStreak
	} else {
		avg, mastered, streak, err := s.aggregates(ctx, models.DueScope{UserID: userID})
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		stats.AverageScore = avg
		stats.FullyReviewedCards = mastered
		stats.StudyStreak = streak
	}

	graph, err := s.reviewRepo.ScoreSeriesByFolder(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	stats.AccuracyGraph = graph
	return stats, nil
}

// Folder returns performance for one folder, with the accuracy graph
// keyed by deck name.
func (s *statsService) Folder(ctx context.Context, folderID int64, userID string) (*models.FolderStats, error) {
	folder, err := s.folderRepo.GetOwned(ctx, folderID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if folder == nil {
		return nil, errors.NewNotFoundError("folder", folderID)
	}

	avg, mastered, streak, err := s.aggregates(ctx, models.DueScope{UserID: userID, FolderID: folderID})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	graph, err := s.reviewRepo.ScoreSeriesByDeck(ctx, folderID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	return &models.FolderStats{
		FolderName:         folder.Name,
		AverageScore:       avg,
		FullyReviewedCards: mastered,
		StudyStreak:        streak,
		AccuracyGraph:      graph,
	}, nil
}

// Deck returns performance for one deck with a flat score history.
func (s *statsService) Deck(ctx context.Context, deckID int64, userID string) (*models.DeckStats, error) {
	deck, err := s.deckRepo.GetOwned(ctx, deckID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	avg, mastered, streak, err := s.aggregates(ctx, models.DueScope{UserID: userID, DeckID: deckID})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	series, err := s.reviewRepo.ScoreSeries(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if series == nil {
		series = []models.ScorePoint{}
	}

	return &models.DeckStats{
		DeckName:           deck.Name,
		AverageScore:       avg,
		FullyReviewedCards: mastered,
		StudyStreak:        streak,
		AccuracyGraph:      series,
	}, nil
}
