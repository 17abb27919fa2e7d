package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/logout", s.handleLogout)
			r.Get("/profile", s.handleProfile)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/folder", func(r chi.Router) {
			r.Post("/", s.handleCreateFolder)
			r.Get("/", s.handleListFolders)
			r.Get("/{id}", s.handleGetFolder)
			r.Put("/{id}", s.handleUpdateFolder)
			r.Delete("/{id}", s.handleDeleteFolder)
		})

		// The create routes take the parent id in the path; chi requires
		// one param name per segment, so it stays "id" throughout.
		r.Route("/deck", func(r chi.Router) {
			r.Post("/{id}", s.handleCreateDeck)
			r.Get("/{id}", s.handleGetDeck)
			r.Put("/{id}", s.handleUpdateDeck)
			r.Delete("/{id}", s.handleDeleteDeck)
		})

		r.Route("/card", func(r chi.Router) {
			r.Post("/{id}", s.handleCreateCard)
			r.Get("/{id}", s.handleGetCard)
			r.Put("/{id}", s.handleUpdateCard)
			r.Delete("/{id}", s.handleDeleteCard)
		})

		r.Route("/review", func(r chi.Router) {
			r.Get("/queue", s.handleReviewQueue)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/stats/general", s.handleGeneralStats)
			r.Get("/stats/folder/{id}", s.handleFolderStats)
			r.Get("/stats/deck/{id}", s.handleDeckStats)
			r.Post("/{cardID}", s.handleSubmitReview)
			r.Get("/{cardID}/history", s.handleReviewHistory)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/chat", s.handleChat)
			r.Get("/conversations", s.handleConversations)
		})
	})

	return r
}
