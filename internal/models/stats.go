package models

import "time"

// DashboardStats buckets non-mastered cards by how soon they come due.
type DashboardStats struct {
	CardsDueToday     int `json:"cards_due_today"`
	CardsDueThisWeek  int `json:"cards_due_this_week"`
	CardsDueThisMonth int `json:"cards_due_this_month"`
}

// GeneralStats aggregates review performance across all of a user's folders.
type GeneralStats struct {
	AverageScore       float64                 `json:"average_score"`
	FullyReviewedCards int                     `json:"fully_reviewed_cards"`
	StudyStreak        int                     `json:"study_streak"`
	AccuracyGraph      map[string][]ScorePoint `json:"accuracy_graph"`
}

// FolderStats aggregates review performance for one folder, with the
// accuracy graph keyed by deck name.
type FolderStats struct {
	FolderName         string                  `json:"folder_name"`
	AverageScore       float64                 `json:"average_score"`
	FullyReviewedCards int                     `json:"fully_reviewed_cards"`
	StudyStreak        int                     `json:"study_streak"`
	AccuracyGraph      map[string][]ScorePoint `json:"accuracy_graph"`
}

// DeckStats aggregates review performance for one deck.
type DeckStats struct {
	DeckName           string       `json:"deck_name"`
	AverageScore       float64      `json:"average_score"`
	FullyReviewedCards int          `json:"fully_reviewed_cards"`
	StudyStreak        int          `json:"study_streak"`
	AccuracyGraph      []ScorePoint `json:"accuracy_graph"`
}

// UserStatsCache is the precomputed per-user aggregate row refreshed
// asynchronously after review submissions.
type UserStatsCache struct {
	UserID             string    `json:"user_id"`
	AverageScore       float64   `json:"average_score"`
	FullyReviewedCards int       `json:"fully_reviewed_cards"`
	TotalReviews       int       `json:"total_reviews"`
	StudyStreak        int       `json:"study_streak"`
	RefreshedAt        time.Time `json:"refreshed_at"`
}

// StrugglingCard is a card whose recent scores fall below the struggle
// threshold, used to build AI chat context.
type StrugglingCard struct {
	Question       string  `json:"question"`
	DeckName       string  `json:"topic"`
	AvgRecentScore float64 `json:"avg_score"`
}

// KnowledgeGap is a deck ranked by how far it is from full mastery.
type KnowledgeGap struct {
	DeckName       string  `json:"topic"`
	CompletionRate float64 `json:"completion_rate"`
}
