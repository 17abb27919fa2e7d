package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetCache(ctx context.Context, userID string) (*models.UserStatsCache, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	var c models.UserStatsCache
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, average_score, fully_reviewed_cards, total_reviews, study_streak, refreshed_at
FROM user_stats_cache
WHERE user_id = ?
`, userID).Scan(&c.UserID, &c.AverageScore, &c.FullyReviewedCards, &c.TotalReviews, &c.StudyStreak, &c.RefreshedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stats cache for user: %s", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get stats cache: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *statsRepository) UpsertCache(ctx context.Context, c models.UserStatsCache) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("refreshing stats cache: user_id=%s", c.UserID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_stats_cache (user_id, average_score, fully_reviewed_cards, total_reviews, study_streak, refreshed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    average_score = excluded.average_score,
    fully_reviewed_cards = excluded.fully_reviewed_cards,
    total_reviews = excluded.total_reviews,
    study_streak = excluded.study_streak,
    refreshed_at = excluded.refreshed_at
`, c.UserID, c.AverageScore, c.FullyReviewedCards, c.TotalReviews, c.StudyStreak, c.RefreshedAt)
	if err != nil {
		log.Error("failed to upsert stats cache: %v", err)
	}
	return err
}

func (r *statsRepository) StrugglingCards(ctx context.Context, userID string, belowScore float64, limit int) ([]models.StrugglingCard, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching struggling cards: user_id=%s, below=%.1f", userID, belowScore)

	rows, err := r.db.QueryContext(ctx, `
SELECT question, deck_name, avg_score FROM (
    SELECT c.question AS question, d.name AS deck_name, AVG(rv.score) AS avg_score
    FROM cards c
    JOIN decks d ON d.id = c.deck_id
    JOIN folders f ON f.id = d.folder_id
    JOIN (
        SELECT card_id, score,
               ROW_NUMBER() OVER (PARTITION BY card_id ORDER BY reviewed_at DESC) AS rn
        FROM reviews
    ) rv ON rv.card_id = c.id AND rv.rn <= 3
    WHERE f.user_id = ?
    GROUP BY c.id
)
WHERE avg_score < ?
ORDER BY avg_score ASC
LIMIT ?
`, userID, belowScore, limit)
	if err != nil {
		log.Error("failed to query struggling cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.StrugglingCard
	for rows.Next() {
		var c models.StrugglingCard
		if err := rows.Scan(&c.Question, &c.DeckName, &c.AvgRecentScore); err != nil {
			log.Error("failed to scan struggling card: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *statsRepository) MasteredDecks(ctx context.Context, userID string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT d.name
FROM decks d
JOIN folders f ON f.id = d.folder_id
JOIN cards c ON c.deck_id = d.id
WHERE f.user_id = ?
GROUP BY d.id
HAVING SUM(CASE WHEN c.is_fully_reviewed THEN 0 ELSE 1 END) = 0
ORDER BY d.name ASC
`, userID)
	if err != nil {
		log.Error("failed to query mastered decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Error("failed to scan deck name: %v", err)
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *statsRepository) KnowledgeGaps(ctx context.Context, userID string, limit int) ([]models.KnowledgeGap, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT d.name, 100.0 * SUM(c.is_fully_reviewed) / COUNT(c.id) AS completion_rate
FROM decks d
JOIN folders f ON f.id = d.folder_id
JOIN cards c ON c.deck_id = d.id
WHERE f.user_id = ?
GROUP BY d.id
HAVING SUM(CASE WHEN c.is_fully_reviewed THEN 0 ELSE 1 END) > 0
ORDER BY completion_rate ASC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to query knowledge gaps: %v", err)
		return nil, err
	}
	defer rows.Close()

	var gaps []models.KnowledgeGap
	for rows.Next() {
		var g models.KnowledgeGap
		if err := rows.Scan(&g.DeckName, &g.CompletionRate); err != nil {
			log.Error("failed to scan knowledge gap: %v", err)
			return nil, err
		}
		gaps = append(gaps, g)
	}
	return gaps, rows.Err()
}

func (r *statsRepository) CountFolders(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM folders WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *statsRepository) CountDecks(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM decks d
JOIN folders f ON f.id = d.folder_id
WHERE f.user_id = ?
`, userID).Scan(&count)
	return count, err
}

func (r *statsRepository) CountCards(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM cards c
JOIN decks d ON d.id = c.deck_id
JOIN folders f ON f.id = d.folder_id
WHERE f.user_id = ?
`, userID).Scan(&count)
	return count, err
}
