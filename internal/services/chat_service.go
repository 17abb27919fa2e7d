package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/hailem/recallbox/internal/ai"
	"github.com/hailem/recallbox/internal/errors"
	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

const (
	maxQueryLength     = 2000
	struggleThreshold  = 60.0
	chatContextEntries = 5
)

const chatSystemPrompt = "You are a study assistant inside a flashcard app. " +
	"Use the user's study data below to give specific, encouraging advice. " +
	"Keep answers short and concrete."

// ChatService handles the AI study assistant
type ChatService interface {
	Ask(ctx context.Context, userID, query string) (*models.Conversation, error)
	History(ctx context.Context, userID string, limit int) ([]models.Conversation, error)
}

type chatService struct {
	statsRepo repository.StatsRepository
	convRepo  repository.ConversationRepository
	chat      ai.ChatModel
	now       func() time.Time
}

// NewChatService creates a new ChatService
func NewChatService(statsRepo repository.StatsRepository, convRepo repository.ConversationRepository, chat ai.ChatModel) ChatService {
	return &chatService{
		statsRepo: statsRepo,
		convRepo:  convRepo,
		chat:      chat,
		now:       time.Now,
	}
}

// Ask answers a free-form question with the user's compressed study data
// as context, then stores the exchange.
func (s *chatService) Ask(ctx context.Context, userID, query string) (*models.Conversation, error) {
	log := logger.FromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("query", "must not be empty")
	}
	if len(query) > maxQueryLength {
		return nil, errors.NewValidationError("query", "must be at most 2000 characters")
	}

	studyContext, err := s.buildStudyContext(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	response, err := s.chat.Chat(ctx, chatSystemPrompt+"\n\n"+studyContext, query)
	if err != nil {
		if stderrors.Is(err, ai.ErrUnavailable) {
			return nil, errors.NewUnavailableError("the study assistant is temporarily unavailable", err)
		}
		return nil, errors.NewInternalError(err)
	}

	conv := models.Conversation{
		UserID:    userID,
		UserQuery: query,
		Response:  response,
		CreatedAt: s.now().UTC(),
	}
	conv.ID, err = s.convRepo.Insert(ctx, conv)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Debug("chat exchange stored: id=%d", conv.ID)
	return &conv, nil
}

func (s *chatService) History(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	if limit <= 0 {
		limit = 20
	}
	convs, err := s.convRepo.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	return convs, nil
}

// buildStudyContext compresses the user's study state into a short plain
// text block instead of shipping raw card data to the model.
func (s *chatService) buildStudyContext(ctx context.Context, userID string) (string, error) {
	folders, err := s.statsRepo.CountFolders(ctx, userID)
	if err != nil {
		return "", err
	}
	decks, err := s.statsRepo.CountDecks(ctx, userID)
	if err != nil {
		return "", err
	}
	cards, err := s.statsRepo.CountCards(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Study data:\n- Collection: %d folders, %d decks, %d cards\n", folders, decks, cards)

	cache, err := s.statsRepo.GetCache(ctx, userID)
	if err != nil {
		return "", err
	}
	if cache != nil {
		fmt.Fprintf(&b, "- Overall: average score %.1f, %d cards mastered, %d reviews, %d day streak\n",
			cache.AverageScore, cache.FullyReviewedCards, cache.TotalReviews, cache.StudyStreak)
	}

	struggling, err := s.statsRepo.StrugglingCards(ctx, userID, struggleThreshold, chatContextEntries)
	if err != nil {
		return "", err
	}
	for _, c := range struggling {
		fmt.Fprintf(&b, "- Struggling: %q in deck %q (recent average %.0f)\n", c.Question, c.DeckName, c.AvgRecentScore)
	}

	mastered, err := s.statsRepo.MasteredDecks(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(mastered) > 0 {
		fmt.Fprintf(&b, "- Fully mastered decks: %s\n", strings.Join(mastered, ", "))
	}

	gaps, err := s.statsRepo.KnowledgeGaps(ctx, userID, chatContextEntries)
	if err != nil {
		return "", err
	}
	for _, g := range gaps {
		fmt.Fprintf(&b, "- Gap: deck %q is %.0f%% mastered\n", g.DeckName, g.CompletionRate)
	}

	return b.String(), nil
}
