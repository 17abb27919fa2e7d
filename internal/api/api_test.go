package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hailem/recallbox/internal/ai"
	"github.com/hailem/recallbox/internal/api"
	"github.com/hailem/recallbox/internal/auth"
	"github.com/hailem/recallbox/internal/repository/sqlite"
	"github.com/hailem/recallbox/internal/services"
	"github.com/hailem/recallbox/internal/testutil"
	"github.com/hailem/recallbox/internal/testutil/mocks"
)

type APISuite struct {
	suite.Suite
	ts     *httptest.Server
	scorer *mocks.MockScorer
	token  string
}

func (s *APISuite) SetupTest() {
	db := testutil.NewTestDB(s.T())
	s.T().Cleanup(func() { testutil.MustClose(s.T(), db) })

	userRepo := sqlite.NewUserRepository(db)
	folderRepo := sqlite.NewFolderRepository(db)
	deckRepo := sqlite.NewDeckRepository(db)
	cardRepo := sqlite.NewCardRepository(db)
	reviewRepo := sqlite.NewReviewRepository(db)
	convRepo := sqlite.NewConversationRepository(db)
	statsRepo := sqlite.NewStatsRepository(db)

	s.scorer = new(mocks.MockScorer)
	jobQueue := new(mocks.MockJobQueue)
	jobQueue.On("EnqueueStatsRefresh", mock.Anything).Return(nil)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	blocklist := auth.NewMemoryBlocklist()
	chat := new(mocks.MockChatModel)
	chat.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return("keep going", nil)

	server := &api.Server{
		Auth:      services.NewAuthService(userRepo, tokens, blocklist),
		Folders:   services.NewFolderService(folderRepo, deckRepo),
		Decks:     services.NewDeckService(folderRepo, deckRepo, cardRepo),
		Cards:     services.NewCardService(deckRepo, cardRepo),
		Reviews:   services.NewReviewService(cardRepo, reviewRepo, s.scorer, jobQueue),
		Stats:     services.NewStatsService(folderRepo, deckRepo, cardRepo, reviewRepo, statsRepo),
		Chat:      services.NewChatService(statsRepo, convRepo, chat),
		Tokens:    tokens,
		Blocklist: blocklist,
	}

	s.ts = httptest.NewServer(server.Routes())
	s.T().Cleanup(s.ts.Close)

	s.token = ""
	s.register("alice")
	s.token = s.login("alice")
}

func (s *APISuite) do(method, path string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.ts.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.ts.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, dst any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *APISuite) register(username string) {
	resp := s.do(http.MethodPost, "/auth/register", map[string]string{
		"full_name": "Test User",
		"username":  username,
		"email":     username + "@example.com",
		"password":  "password123",
	})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
}

func (s *APISuite) login(username string) string {
	resp := s.do(http.MethodPost, "/auth/login", map[string]string{
		"identifier": username,
		"password":   "password123",
	})
	var body struct {
		Token string `json:"token"`
	}
	s.decode(resp, &body)
	s.Require().NotEmpty(body.Token)
	return body.Token
}

// createCard builds folder -> deck -> card and returns the card id.
func (s *APISuite) createCard() int64 {
	resp := s.do(http.MethodPost, "/folder/", map[string]string{"name": "Biology"})
	var folder struct {
		ID int64 `json:"id"`
	}
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.decode(resp, &folder)

	resp = s.do(http.MethodPost, fmt.Sprintf("/deck/%d", folder.ID), map[string]string{"name": "Cells"})
	var deck struct {
		ID int64 `json:"id"`
	}
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.decode(resp, &deck)

	resp = s.do(http.MethodPost, fmt.Sprintf("/card/%d", deck.ID), map[string]string{
		"question": "What is a mitochondrion?",
		"answer":   "The organelle that produces ATP.",
	})
	var card struct {
		ID int64 `json:"id"`
	}
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.decode(resp, &card)
	return card.ID
}

func (s *APISuite) TestRequiresAuth() {
	s.token = ""
	resp := s.do(http.MethodGet, "/folder/", nil)
	defer resp.Body.Close()
	s.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APISuite) TestLogoutRevokesToken() {
	resp := s.do(http.MethodPost, "/auth/logout", nil)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodGet, "/auth/profile", nil)
	defer resp.Body.Close()
	s.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APISuite) TestReviewLifecycle() {
	cardID := s.createCard()
	s.scorer.On("Score", mock.Anything, mock.Anything, mock.Anything).Return(85.0, nil)

	stages := []string{"First Review", "Second Review", "Fully Reviewed"}
	for i, want := range stages {
		resp := s.do(http.MethodPost, fmt.Sprintf("/review/%d", cardID), map[string]string{
			"answer": "It produces ATP.",
		})
		var result struct {
			Score            float64 `json:"score"`
			ReviewStage      string  `json:"review_stage"`
			ReviewsCompleted int     `json:"reviews_completed"`
			ReviewsRemaining int     `json:"reviews_remaining"`
			IsFullyReviewed  bool    `json:"is_fully_reviewed"`
			NextReviewAt     *string `json:"next_review_at"`
		}
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		s.decode(resp, &result)
		s.Assert().Equal(want, result.ReviewStage)
		s.Assert().Equal(i+1, result.ReviewsCompleted)
		s.Assert().Equal(85.0, result.Score)

		if i == len(stages)-1 {
			s.Assert().True(result.IsFullyReviewed)
			s.Assert().Zero(result.ReviewsRemaining)
			s.Assert().Nil(result.NextReviewAt)
		} else {
			s.Assert().False(result.IsFullyReviewed)
			s.Assert().NotNil(result.NextReviewAt)
		}
	}

	// A fourth submission is rejected: the card left the rotation.
	resp := s.do(http.MethodPost, fmt.Sprintf("/review/%d", cardID), map[string]string{
		"answer": "It produces ATP.",
	})
	defer resp.Body.Close()
	s.Assert().Equal(http.StatusConflict, resp.StatusCode)

	// History shows all three reviews.
	resp = s.do(http.MethodGet, fmt.Sprintf("/review/%d/history", cardID), nil)
	var history []json.RawMessage
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &history)
	s.Assert().Len(history, 3)
}

func (s *APISuite) TestSubmitEmptyAnswer() {
	cardID := s.createCard()

	resp := s.do(http.MethodPost, fmt.Sprintf("/review/%d", cardID), map[string]string{
		"answer": "   ",
	})
	defer resp.Body.Close()
	s.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestSubmitWhenScoringDown() {
	cardID := s.createCard()
	s.scorer.On("Score", mock.Anything, mock.Anything, mock.Anything).
		Return(0.0, fmt.Errorf("%w: connection refused", ai.ErrUnavailable))

	resp := s.do(http.MethodPost, fmt.Sprintf("/review/%d", cardID), map[string]string{
		"answer": "attempt",
	})
	defer resp.Body.Close()
	s.Assert().Equal(http.StatusServiceUnavailable, resp.StatusCode)

	// The failed attempt must not advance the card.
	resp = s.do(http.MethodGet, fmt.Sprintf("/card/%d", cardID), nil)
	var card struct {
		ReviewCount int `json:"review_count"`
	}
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &card)
	s.Assert().Zero(card.ReviewCount)
}

func (s *APISuite) TestDashboardBucketsNewCard() {
	s.createCard()

	// A fresh card comes due 24h after creation, which lands in the
	// week bucket relative to the start of tomorrow.
	resp := s.do(http.MethodGet, "/review/dashboard", nil)
	var stats struct {
		CardsDueToday    int `json:"cards_due_today"`
		CardsDueThisWeek int `json:"cards_due_this_week"`
	}
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &stats)
	s.Assert().Zero(stats.CardsDueToday)
	s.Assert().Equal(1, stats.CardsDueThisWeek)
}

func (s *APISuite) TestQueueExcludesNotYetDue() {
	s.createCard()

	resp := s.do(http.MethodGet, "/review/queue", nil)
	var cards []json.RawMessage
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &cards)
	s.Assert().Empty(cards)
}

func (s *APISuite) TestCreateDeckInMissingFolder() {
	resp := s.do(http.MethodPost, "/deck/999", map[string]string{"name": "Orphan"})
	defer resp.Body.Close()
	s.Assert().Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestOwnershipIsolation() {
	cardID := s.createCard()

	s.register("bob")
	s.token = s.login("bob")

	resp := s.do(http.MethodGet, fmt.Sprintf("/card/%d", cardID), nil)
	defer resp.Body.Close()
	s.Assert().Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestChatStoresConversation() {
	resp := s.do(http.MethodPost, "/ai/chat", map[string]string{"query": "What should I study?"})
	var conv struct {
		Response string `json:"response"`
	}
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.decode(resp, &conv)
	s.Assert().Equal("keep going", conv.Response)

	resp = s.do(http.MethodGet, "/ai/conversations", nil)
	var convs []json.RawMessage
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &convs)
	s.Assert().Len(convs, 1)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
