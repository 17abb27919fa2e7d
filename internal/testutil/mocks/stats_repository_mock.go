package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hailem/recallbox/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetCache(ctx context.Context, userID string) (*models.UserStatsCache, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStatsCache), args.Error(1)
}

func (m *MockStatsRepository) UpsertCache(ctx context.Context, cache models.UserStatsCache) error {
	args := m.Called(ctx, cache)
	return args.Error(0)
}

func (m *MockStatsRepository) StrugglingCards(ctx context.Context, userID string, belowScore float64, limit int) ([]models.StrugglingCard, error) {
	args := m.Called(ctx, userID, belowScore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StrugglingCard), args.Error(1)
}

func (m *MockStatsRepository) MasteredDecks(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsRepository) KnowledgeGaps(ctx context.Context, userID string, limit int) ([]models.KnowledgeGap, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.KnowledgeGap), args.Error(1)
}

func (m *MockStatsRepository) CountFolders(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountDecks(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountCards(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
