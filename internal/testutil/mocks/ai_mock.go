package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockScorer is a mock implementation of ai.Scorer
type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, reference, answer string) (float64, error) {
	args := m.Called(ctx, reference, answer)
	return args.Get(0).(float64), args.Error(1)
}

// MockChatModel is a mock implementation of ai.ChatModel
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Chat(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}
