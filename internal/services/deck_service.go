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

// DeckService handles deck business logic
type DeckService interface {
	Create(ctx context.Context, userID string, folderID int64, name, description string) (*models.Deck, error)
	Get(ctx context.Context, id int64, userID string) (*models.Deck, []models.Card, error)
	Update(ctx context.Context, id int64, userID, name, description string) (*models.Deck, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type deckService struct {
	folderRepo repository.FolderRepository
	deckRepo   repository.DeckRepository
	cardRepo   repository.CardRepository
	now        func() time.Time
}

// NewDeckService creates a new DeckService
func NewDeckService(folderRepo repository.FolderRepository, deckRepo repository.DeckRepository, cardRepo repository.CardRepository) DeckService {
	return &deckService{folderRepo: folderRepo, deckRepo: deckRepo, cardRepo: cardRepo, now: time.Now}
}

func (s *deckService) Create(ctx context.Context, userID string, folderID int64, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name, vErr := validateName(name)
	if vErr != nil {
		return nil, vErr
	}

	folder, err := s.folderRepo.GetOwned(ctx, folderID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if folder == nil {
		return nil, errors.NewNotFoundError("folder", folderID)
	}

	exists, err := s.deckRepo.NameExists(ctx, folderID, name, 0)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if exists {
		return nil, errors.NewConflictError("a deck with this name already exists in the folder")
	}

	now := s.now().UTC()
	deck := models.Deck{
		FolderID:    folderID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	deck.ID, err = s.deckRepo.Insert(ctx, deck)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Debug("deck created: id=%d, folder_id=%d", deck.ID, folderID)
	return &deck, nil
}

// Get returns the deck together with its cards.
func (s *deckService) Get(ctx context.Context, id int64, userID string) (*models.Deck, []models.Card, error) {
	deck, err := s.deckRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, nil, errors.NewNotFoundError("deck", id)
	}

	cards, err := s.cardRepo.ListByDeck(ctx, id)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return deck, cards, nil
}

func (s *deckService) Update(ctx context.Context, id int64, userID, name, description string) (*models.Deck, error) {
	name, vErr := validateName(name)
	if vErr != nil {
		return nil, vErr
	}

	deck, err := s.deckRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}

	exists, err := s.deckRepo.NameExists(ctx, deck.FolderID, name, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if exists {
		return nil, errors.NewConflictError("a deck with this name already exists in the folder")
	}

	deck.Name = name
	deck.Description = strings.TrimSpace(description)
	deck.UpdatedAt = s.now().UTC()
	if err := s.deckRepo.Update(ctx, *deck); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return deck, nil
}

func (s *deckService) Delete(ctx context.Context, id int64, userID string) error {
	log := logger.FromContext(ctx)

	deck, err := s.deckRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", id)
	}

	if err := s.deckRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	log.Debug("deck deleted: id=%d", id)
	return nil
}
