package api

import (
	"net/http"

	"github.com/hailem/recallbox/internal/models"
)

type folderRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type folderDetailResponse struct {
	models.Folder
	Decks []models.DeckSummary `json:"decks"`
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	folder, err := s.Folders.Create(r.Context(), token.UserID, req.Name, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, folder)
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	folders, err := s.Folders.List(r.Context(), token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, folders)
}

func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	folder, decks, err := s.Folders.Get(r.Context(), id, token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, folderDetailResponse{Folder: *folder, Decks: decks})
}

func (s *Server) handleUpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	var req folderRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	folder, err := s.Folders.Update(r.Context(), id, token.UserID, req.Name, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, folder)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamInt64(r, "id")
	if appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token := tokenFromContext(r.Context())
	if err := s.Folders.Delete(r.Context(), id, token.UserID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "folder deleted"})
}
