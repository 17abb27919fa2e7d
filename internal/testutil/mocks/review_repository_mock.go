package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hailem/recallbox/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) HistoryForCard(ctx context.Context, cardID int64, userID string, limit int) ([]models.Review, error) {
	args := m.Called(ctx, cardID, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) AverageScore(ctx context.Context, scope models.DueScope) (float64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReviewRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) ScoreSeries(ctx context.Context, deckID int64) ([]models.ScorePoint, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScorePoint), args.Error(1)
}

func (m *MockReviewRepository) ScoreSeriesByDeck(ctx context.Context, folderID int64) (map[string][]models.ScorePoint, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.ScorePoint), args.Error(1)
}

func (m *MockReviewRepository) ScoreSeriesByFolder(ctx context.Context, userID string) (map[string][]models.ScorePoint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.ScorePoint), args.Error(1)
}

func (m *MockReviewRepository) ReviewDays(ctx context.Context, scope models.DueScope) ([]time.Time, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}
