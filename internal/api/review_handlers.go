package api

import (
	"net/http"
)

type submitReviewRequest struct {
	Answer string `json:"answer" validate:"required"`
	Note   string `json:"note"`
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	cardID, appErr := urlParamInt64(r, "cardID")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	var req submitReviewRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	result, err := s.Reviews.Submit(r.Context(), token.UserID, cardID, req.Answer, req.Note)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	folderID, appErr := queryInt64(r, "folder_id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}
	deckID, appErr := queryInt64(r, "deck_id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}
	limit, appErr := queryInt64(r, "limit")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	cards, err := s.Reviews.Queue(r.Context(), token.UserID, folderID, deckID, int(limit))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (s *Server) handleReviewHistory(w http.ResponseWriter, r *http.Request) {
	cardID, appErr := urlParamInt64(r, "cardID")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}
	limit, appErr := queryInt64(r, "limit")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	reviews, err := s.Reviews.History(r.Context(), token.UserID, cardID, int(limit))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	stats, err := s.Reviews.Dashboard(r.Context(), token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
