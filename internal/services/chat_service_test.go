package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hailem/recallbox/internal/ai"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/services"
	"github.com/hailem/recallbox/internal/testutil/mocks"
)

func newChatService() (services.ChatService, *mocks.MockStatsRepository, *mocks.MockConversationRepository, *mocks.MockChatModel) {
	statsRepo := new(mocks.MockStatsRepository)
	convRepo := new(mocks.MockConversationRepository)
	chat := new(mocks.MockChatModel)
	return services.NewChatService(statsRepo, convRepo, chat), statsRepo, convRepo, chat
}

func stubStudyData(statsRepo *mocks.MockStatsRepository) {
	statsRepo.On("CountFolders", mock.Anything, "user-1").Return(2, nil)
	statsRepo.On("CountDecks", mock.Anything, "user-1").Return(5, nil)
	statsRepo.On("CountCards", mock.Anything, "user-1").Return(40, nil)
	statsRepo.On("GetCache", mock.Anything, "user-1").Return(&models.UserStatsCache{
		AverageScore: 72.0, FullyReviewedCards: 8, TotalReviews: 90, StudyStreak: 3,
	}, nil)
	statsRepo.On("StrugglingCards", mock.Anything, "user-1", 60.0, 5).Return([]models.StrugglingCard{
		{Question: "What is osmosis?", DeckName: "Cells", AvgRecentScore: 41},
	}, nil)
	statsRepo.On("MasteredDecks", mock.Anything, "user-1").Return([]string{"Algebra"}, nil)
	statsRepo.On("KnowledgeGaps", mock.Anything, "user-1", 5).Return([]models.KnowledgeGap{
		{DeckName: "Cells", CompletionRate: 25},
	}, nil)
}

func TestAskBuildsContextAndStoresExchange(t *testing.T) {
	svc, statsRepo, convRepo, chat := newChatService()
	stubStudyData(statsRepo)

	chat.On("Chat", mock.Anything, mock.MatchedBy(func(system string) bool {
		return strings.Contains(system, "2 folders, 5 decks, 40 cards") &&
			strings.Contains(system, "What is osmosis?") &&
			strings.Contains(system, "Algebra")
	}), "What should I focus on?").Return("Focus on the Cells deck.", nil)
	convRepo.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Conversation) bool {
		return c.UserID == "user-1" &&
			c.UserQuery == "What should I focus on?" &&
			c.Response == "Focus on the Cells deck."
	})).Return(int64(3), nil)

	conv, err := svc.Ask(context.Background(), "user-1", "  What should I focus on?  ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), conv.ID)
	assert.Equal(t, "Focus on the Cells deck.", conv.Response)

	chat.AssertExpectations(t)
	convRepo.AssertExpectations(t)
}

func TestAskRejectsEmptyQuery(t *testing.T) {
	svc, _, convRepo, chat := newChatService()

	_, err := svc.Ask(context.Background(), "user-1", "   ")
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
	chat.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything, mock.Anything)
	convRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAskModelUnavailable(t *testing.T) {
	svc, statsRepo, convRepo, chat := newChatService()
	stubStudyData(statsRepo)

	chat.On("Chat", mock.Anything, mock.Anything, "help").Return("", ai.ErrUnavailable)

	_, err := svc.Ask(context.Background(), "user-1", "help")
	require.Error(t, err)
	assert.Equal(t, 503, appErrStatus(t, err))
	convRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestHistoryDefaultsLimit(t *testing.T) {
	svc, _, convRepo, _ := newChatService()

	convRepo.On("ListForUser", mock.Anything, "user-1", 20).Return(nil, nil)

	convs, err := svc.History(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.NotNil(t, convs)
	assert.Empty(t, convs)
}
