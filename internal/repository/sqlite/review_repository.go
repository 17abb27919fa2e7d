package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) HistoryForCard(ctx context.Context, cardID int64, userID string, limit int) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching review history: card_id=%d, limit=%d", cardID, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, card_id, user_id, user_answer, note, score, reviewed_at
FROM reviews
WHERE card_id = ? AND user_id = ?
ORDER BY reviewed_at DESC
LIMIT ?
`, cardID, userID, limit)
	if err != nil {
		log.Error("failed to query review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.CardID, &rev.UserID, &rev.UserAnswer, &rev.Note, &rev.Score, &rev.ReviewedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) AverageScore(ctx context.Context, scope models.DueScope) (float64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	query := sqlBuilder.Select("COALESCE(AVG(rv.score), 0)").
		From("reviews rv").
		Join("cards c ON c.id = rv.card_id").
		Join("decks d ON d.id = c.deck_id").
		Join("folders f ON f.id = d.folder_id").
		Where(cardScopeConds(scope))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build average query: %v", err)
		return 0, err
	}

	var avg float64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&avg); err != nil {
		log.Error("failed to compute average score: %v", err)
		return 0, err
	}
	return avg, nil
}

func (r *reviewRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *reviewRepository) ScoreSeries(ctx context.Context, deckID int64) ([]models.ScorePoint, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT rv.reviewed_at, rv.score
FROM reviews rv
JOIN cards c ON c.id = rv.card_id
WHERE c.deck_id = ?
ORDER BY rv.reviewed_at ASC
`, deckID)
	if err != nil {
		log.Error("failed to query score series: %v", err)
		return nil, err
	}
	defer rows.Close()

	var series []models.ScorePoint
	for rows.Next() {
		var p models.ScorePoint
		if err := rows.Scan(&p.Timestamp, &p.Score); err != nil {
			log.Error("failed to scan score point: %v", err)
			return nil, err
		}
		series = append(series, p)
	}
	return series, rows.Err()
}

func (r *reviewRepository) ScoreSeriesByDeck(ctx context.Context, folderID int64) (map[string][]models.ScorePoint, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT d.name, rv.reviewed_at, rv.score
FROM decks d
LEFT JOIN cards c ON c.deck_id = d.id
LEFT JOIN reviews rv ON rv.card_id = c.id
WHERE d.folder_id = ?
ORDER BY rv.reviewed_at ASC
`, folderID)
	if err != nil {
		log.Error("failed to query per-deck score series: %v", err)
		return nil, err
	}
	defer rows.Close()

	return collectKeyedSeries(rows)
}

func (r *reviewRepository) ScoreSeriesByFolder(ctx context.Context, userID string) (map[string][]models.ScorePoint, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT f.name, rv.reviewed_at, rv.score
FROM folders f
LEFT JOIN decks d ON d.folder_id = f.id
LEFT JOIN cards c ON c.deck_id = d.id
LEFT JOIN reviews rv ON rv.card_id = c.id
WHERE f.user_id = ?
ORDER BY rv.reviewed_at ASC
`, userID)
	if err != nil {
		log.Error("failed to query per-folder score series: %v", err)
		return nil, err
	}
	defer rows.Close()

	return collectKeyedSeries(rows)
}

// collectKeyedSeries groups (name, timestamp, score) rows into per-name
// series. Names with no reviews still appear, with an empty series.
func collectKeyedSeries(rows *sql.Rows) (map[string][]models.ScorePoint, error) {
	series := map[string][]models.ScorePoint{}
	for rows.Next() {
		var name string
		var reviewedAt sql.NullTime
		var score sql.NullFloat64
		if err := rows.Scan(&name, &reviewedAt, &score); err != nil {
			return nil, err
		}
		if _, ok := series[name]; !ok {
			series[name] = []models.ScorePoint{}
		}
		if reviewedAt.Valid && score.Valid {
			series[name] = append(series[name], models.ScorePoint{Timestamp: reviewedAt.Time, Score: score.Float64})
		}
	}
	return series, rows.Err()
}

func (r *reviewRepository) ReviewDays(ctx context.Context, scope models.DueScope) ([]time.Time, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	query := sqlBuilder.Select("DISTINCT DATE(rv.reviewed_at)").
		From("reviews rv").
		Join("cards c ON c.id = rv.card_id").
		Join("decks d ON d.id = c.deck_id").
		Join("folders f ON f.id = d.folder_id").
		Where(cardScopeConds(scope)).
		OrderBy("DATE(rv.reviewed_at) DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build review days query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query review days: %v", err)
		return nil, err
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			log.Error("failed to scan review day: %v", err)
			return nil, err
		}
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, err
		}
		days = append(days, t)
	}
	return days, rows.Err()
}
