package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hailem/recallbox/internal/models"
)

// MockFolderRepository is a mock implementation of repository.FolderRepository
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Insert(ctx context.Context, folder models.Folder) (int64, error) {
	args := m.Called(ctx, folder)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFolderRepository) GetOwned(ctx context.Context, id int64, userID string) (*models.Folder, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Folder), args.Error(1)
}

func (m *MockFolderRepository) ListSummaries(ctx context.Context, userID string) ([]models.FolderSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FolderSummary), args.Error(1)
}

func (m *MockFolderRepository) Update(ctx context.Context, folder models.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFolderRepository) NameExists(ctx context.Context, userID, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}
