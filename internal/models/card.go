package models

import "time"

// DifficultyLevel is the user-assigned difficulty of a card. It is stored
// and displayed but does not influence scheduling.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Valid reports whether d is a known difficulty level.
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Card is a flashcard with its review-scheduling state. ReviewCount,
// IsFullyReviewed, NextReviewAt and LastReviewedAt are owned by the
// mastery state machine and must only change through it.
type Card struct {
	ID              int64           `json:"id"`
	DeckID          int64           `json:"deck_id"`
	Question        string          `json:"question"`
	Answer          string          `json:"answer"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level"`
	ReviewCount     int             `json:"review_count"`
	IsFullyReviewed bool            `json:"is_fully_reviewed"`
	NextReviewAt    *time.Time      `json:"next_review_at"`
	LastReviewedAt  *time.Time      `json:"last_reviewed_at"`
	CreatedAt       time.Time       `json:"created_at"`
}

// DueScope selects which cards a due-query covers. The narrowest non-zero
// field wins: DeckID over FolderID over the whole user.
type DueScope struct {
	UserID   string
	FolderID int64
	DeckID   int64
}
