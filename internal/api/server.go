package api

import (
	"github.com/hailem/recallbox/internal/auth"
	"github.com/hailem/recallbox/internal/services"
)

// Server holds the HTTP handlers' dependencies.
type Server struct {
	Auth      services.AuthService
	Folders   services.FolderService
	Decks     services.DeckService
	Cards     services.CardService
	Reviews   services.ReviewService
	Stats     services.StatsService
	Chat      services.ChatService
	Tokens    *auth.TokenManager
	Blocklist auth.Blocklist
}
