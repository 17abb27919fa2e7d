package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hailem/recallbox/internal/models"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Insert(ctx context.Context, card models.Card) (int64, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) GetOwned(ctx context.Context, id int64, userID string) (*models.Card, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) QuestionExists(ctx context.Context, deckID int64, question string, excludeID int64) (bool, error) {
	args := m.Called(ctx, deckID, question, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardRepository) DueCards(ctx context.Context, scope models.DueScope, now time.Time, limit int) ([]models.Card, error) {
	args := m.Called(ctx, scope, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) CountDueBetween(ctx context.Context, userID string, after *time.Time, until time.Time) (int, error) {
	args := m.Called(ctx, userID, after, until)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) CountByMastery(ctx context.Context, scope models.DueScope, mastered bool) (int, error) {
	args := m.Called(ctx, scope, mastered)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) SubmitReview(ctx context.Context, card models.Card, prevReviewCount int, review models.Review) (int64, error) {
	args := m.Called(ctx, card, prevReviewCount, review)
	return args.Get(0).(int64), args.Error(1)
}
