package models

import "time"

// Review is one submitted answer for a card. Rows are append-only; history
// and analytics are derived from them.
type Review struct {
	ID         int64     `json:"id"`
	CardID     int64     `json:"card_id"`
	UserID     string    `json:"-"`
	UserAnswer string    `json:"user_answer"`
	Note       string    `json:"note,omitempty"`
	Score      float64   `json:"score"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ScorePoint is one point on an accuracy-over-time graph.
type ScorePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
}
