package api

import (
	"net/http"
)

type chatRequest struct {
	Query string `json:"query" validate:"required"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	conv, err := s.Chat.Ask(r.Context(), token.UserID, req.Query)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, conv)
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	limit, appErr := queryInt64(r, "limit")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	convs, err := s.Chat.History(r.Context(), token.UserID, int(limit))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, convs)
}
