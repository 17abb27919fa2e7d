package api

import (
	"net/http"

	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/services"
)

type cardRequest struct {
	Question        string `json:"question" validate:"required"`
	Answer          string `json:"answer" validate:"required"`
	DifficultyLevel string `json:"difficulty_level"`
}

// handleCreateCard creates a card inside the deck named in the path.
func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	deckID, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	var req cardRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	card, err := s.Cards.Create(r.Context(), token.UserID, deckID, services.CardInput{
		Question:        req.Question,
		Answer:          req.Answer,
		DifficultyLevel: models.DifficultyLevel(req.DifficultyLevel),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	card, err := s.Cards.Get(r.Context(), id, token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	var req cardRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	card, err := s.Cards.Update(r.Context(), id, token.UserID, services.CardInput{
		Question:        req.Question,
		Answer:          req.Answer,
		DifficultyLevel: models.DifficultyLevel(req.DifficultyLevel),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	if err := s.Cards.Delete(r.Context(), id, token.UserID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "card deleted"})
}
