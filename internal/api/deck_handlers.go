package api

import (
	"net/http"

	"github.com/hailem/recallbox/internal/models"
)

type deckRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type deckDetailResponse struct {
	models.Deck
	Cards []models.Card `json:"cards"`
}

// handleCreateDeck creates a deck inside the folder named in the path.
func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	folderID, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	var req deckRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	deck, err := s.Decks.Create(r.Context(), token.UserID, folderID, req.Name, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	deck, cards, err := s.Decks.Get(r.Context(), id, token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deckDetailResponse{Deck: *deck, Cards: cards})
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	var req deckRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	deck, err := s.Decks.Update(r.Context(), id, token.UserID, req.Name, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	if err := s.Decks.Delete(r.Context(), id, token.UserID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "deck deleted"})
}
