package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hailem/recallbox/internal/models"
)

// MockConversationRepository is a mock implementation of repository.ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Insert(ctx context.Context, conv models.Conversation) (int64, error) {
	args := m.Called(ctx, conv)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConversationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Conversation), args.Error(1)
}
