package api

import (
	"net/http"

	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/services"
)

type registerRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	user, err := s.Auth.Register(r.Context(), services.RegisterInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		handleError(w, r, appErr)
		return
	}

	token, user, err := s.Auth.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, User: *user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	if err := s.Auth.Logout(r.Context(), token); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	user, err := s.Auth.Profile(r.Context(), token.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
