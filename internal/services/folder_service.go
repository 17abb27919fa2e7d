package services

import (
	"context"
	"strings"
	"time"

	"github.com/hailem/recallbox/internal/errors"
	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

const maxNameLength = 100

// FolderService handles folder business logic
type FolderService interface {
	Create(ctx context.Context, userID, name, description string) (*models.Folder, error)
	List(ctx context.Context, userID string) ([]models.FolderSummary, error)
	Get(ctx context.Context, id int64, userID string) (*models.Folder, []models.DeckSummary, error)
	Update(ctx context.Context, id int64, userID, name, description string) (*models.Folder, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type folderService struct {
	folderRepo repository.FolderRepository
	deckRepo   repository.DeckRepository
	now        func() time.Time
}

// NewFolderService creates a new FolderService
func NewFolderService(folderRepo repository.FolderRepository, deckRepo repository.DeckRepository) FolderService {
	return &folderService{folderRepo: folderRepo, deckRepo: deckRepo, now: time.Now}
}

func validateName(name string) (string, *errors.AppError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.NewValidationError("name", "must not be empty")
	}
	if len(name) > maxNameLength {
		return "", errors.NewValidationError("name", "must be at most 100 characters")
	}
	return name, nil
}

func (s *folderService) Create(ctx context.Context, userID, name, description string) (*models.Folder, error) {
	log := logger.FromContext(ctx)

	name, vErr := validateName(name)
	if vErr != nil {
		return nil, vErr
	}

	exists, err := s.folderRepo.NameExists(ctx, userID, name, 0)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if exists {
		return nil, errors.NewConflictError("a folder with this name already exists")
	}

	folder := models.Folder{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
	}
	folder.ID, err = s.folderRepo.Insert(ctx, folder)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Debug("folder created: id=%d", folder.ID)
	return &folder, nil
}

func (s *folderService) List(ctx context.Context, userID string) ([]models.FolderSummary, error) {
	folders, err := s.folderRepo.ListSummaries(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if folders == nil {
		folders = []models.FolderSummary{}
	}
	return folders, nil
}

// Get returns the folder together with its deck summaries.
func (s *folderService) Get(ctx context.Context, id int64, userID string) (*models.Folder, []models.DeckSummary, error) {
	folder, err := s.folderRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if folder == nil {
		return nil, nil, errors.NewNotFoundError("folder", id)
	}

	decks, err := s.deckRepo.ListByFolder(ctx, id)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if decks == nil {
		decks = []models.DeckSummary{}
	}
	return folder, decks, nil
}

func (s *folderService) Update(ctx context.Context, id int64, userID, name, description string) (*models.Folder, error) {
	name, vErr := validateName(name)
	if vErr != nil {
		return nil, vErr
	}

	folder, err := s.folderRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if folder == nil {
		return nil, errors.NewNotFoundError("folder", id)
	}

	exists, err := s.folderRepo.NameExists(ctx, userID, name, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if exists {
		return nil, errors.NewConflictError("a folder with this name already exists")
	}

	folder.Name = name
	folder.Description = strings.TrimSpace(description)
	if err := s.folderRepo.Update(ctx, *folder); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return folder, nil
}

func (s *folderService) Delete(ctx context.Context, id int64, userID string) error {
	log := logger.FromContext(ctx)

	folder, err := s.folderRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if folder == nil {
		return errors.NewNotFoundError("folder", id)
	}

	if err := s.folderRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	log.Debug("folder deleted: id=%d", id)
	return nil
}
