package api

import (
	"net/http"
)

func (s *Server) handleGeneralStats(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	stats, err := s.Stats.General(r.Context(), token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleFolderStats(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	stats, err := s.Stats.Folder(r.Context(), id, token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	stats, err := s.Stats.Deck(r.Context(), id, token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
