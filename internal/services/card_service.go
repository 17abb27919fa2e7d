package services

import (
	"context"
	"strings"
	"time"

	"github.com/hailem/recallbox/internal/errors"
	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
	"github.com/hailem/recallbox/internal/srs"
)

// CardInput holds the user-editable fields of a card.
type CardInput struct {
	Question        string
	Answer          string
	DifficultyLevel models.DifficultyLevel
}

// CardDetail is a card together with its derived mastery progress.
type CardDetail struct {
	models.Card
	Stage            string `json:"stage"`
	ReviewsRemaining int    `json:"reviews_remaining"`
}

// CardService handles card business logic
type CardService interface {
	Create(ctx context.Context, userID string, deckID int64, input CardInput) (*CardDetail, error)
	Get(ctx context.Context, id int64, userID string) (*CardDetail, error)
	Update(ctx context.Context, id int64, userID string, input CardInput) (*CardDetail, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type cardService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	now      func() time.Time
}

// NewCardService creates a new CardService
func NewCardService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository) CardService {
	return &cardService{deckRepo: deckRepo, cardRepo: cardRepo, now: time.Now}
}

func detail(card models.Card) *CardDetail {
	return &CardDetail{
		Card:             card,
		Stage:            srs.StageLabel(card.ReviewCount),
		ReviewsRemaining: srs.ReviewsRemaining(card.ReviewCount),
	}
}

func validateCardInput(input CardInput) (CardInput, *errors.AppError) {
	input.Question = strings.TrimSpace(input.Question)
	input.Answer = strings.TrimSpace(input.Answer)
	if input.Question == "" {
		return input, errors.NewValidationError("question", "must not be empty")
	}
	if input.Answer == "" {
		return input, errors.NewValidationError("answer", "must not be empty")
	}
	if input.DifficultyLevel == "" {
		input.DifficultyLevel = models.DifficultyMedium
	}
	if !input.DifficultyLevel.Valid() {
		return input, errors.NewValidationError("difficulty_level", "must be easy, medium or hard")
	}
	return input, nil
}

func (s *cardService) Create(ctx context.Context, userID string, deckID int64, input CardInput) (*CardDetail, error) {
	log := logger.FromContext(ctx)

	input, vErr := validateCardInput(input)
	if vErr != nil {
		return nil, vErr
	}

	deck, err := s.deckRepo.GetOwned(ctx, deckID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	exists, err := s.cardRepo.QuestionExists(ctx, deckID, input.Question, 0)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if exists {
		return nil, errors.NewConflictError("a card with this question already exists in the deck")
	}

	now := s.now().UTC()
	firstReview := srs.FirstReviewAt(now)
	card := models.Card{
		DeckID:          deckID,
		Question:        input.Question,
		Answer:          input.Answer,
		DifficultyLevel: input.DifficultyLevel,
		NextReviewAt:    &firstReview,
		CreatedAt:       now,
	}
	card.ID, err = s.cardRepo.Insert(ctx, card)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Debug("card created: id=%d, deck_id=%d", card.ID, deckID)
	return detail(card), nil
}

func (s *cardService) Get(ctx context.Context, id int64, userID string) (*CardDetail, error) {
	card, err := s.cardRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return detail(*card), nil
}

// Update edits the card's content without touching its review state.
func (s *cardService) Update(ctx context.Context, id int64, userID string, input CardInput) (*CardDetail, error) {
	input, vErr := validateCardInput(input)
	if vErr != nil {
		return nil, vErr
	}

	card, err := s.cardRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}

	exists, err := s.cardRepo.QuestionExists(ctx, card.DeckID, input.Question, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if exists {
		return nil, errors.NewConflictError("a card with this question already exists in the deck")
	}

	card.Question = input.Question
	card.Answer = input.Answer
	card.DifficultyLevel = input.DifficultyLevel
	if err := s.cardRepo.Update(ctx, *card); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return detail(*card), nil
}

func (s *cardService) Delete(ctx context.Context, id int64, userID string) error {
	log := logger.FromContext(ctx)

	card, err := s.cardRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", id)
	}

	if err := s.cardRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	log.Debug("card deleted: id=%d", id)
	return nil
}
