package models

import "time"

// User is an account that owns folders, reviews and AI conversations.
type User struct {
	ID            string     `json:"id"`
	FullName      string     `json:"full_name"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	StudyStreak   int        `json:"study_streak"`
	LastStudyDate *time.Time `json:"last_study_date"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Folder groups decks for one user.
type Folder struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// FolderSummary is a folder with aggregate deck/card counts for listings.
type FolderSummary struct {
	Folder
	DeckCount int `json:"deck_count"`
	CardCount int `json:"card_count"`
}

// Deck groups cards inside a folder.
type Deck struct {
	ID          int64     `json:"id"`
	FolderID    int64     `json:"folder_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckSummary is a deck with its card count for folder detail views.
type DeckSummary struct {
	Deck
	CardCount int `json:"card_count"`
}

// Conversation is one stored AI chat exchange.
type Conversation struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	UserQuery string    `json:"user_query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
