package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = "c.id, c.deck_id, c.question, c.answer, c.difficulty_level, c.review_count, c.is_fully_reviewed, c.next_review_at, c.last_reviewed_at, c.created_at"

func scanCard(scan func(dest ...any) error) (models.Card, error) {
	var c models.Card
	var nextReview, lastReviewed sql.NullTime
	err := scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.DifficultyLevel, &c.ReviewCount, &c.IsFullyReviewed, &nextReview, &lastReviewed, &c.CreatedAt)
	if err != nil {
		return c, err
	}
	c.NextReviewAt = timePtr(nextReview)
	c.LastReviewedAt = timePtr(lastReviewed)
	return c, nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, question, answer, difficulty_level, review_count, is_fully_reviewed, next_review_at, last_reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, c.DeckID, c.Question, c.Answer, c.DifficultyLevel, c.ReviewCount, c.IsFullyReviewed, nullTime(c.NextReviewAt), nullTime(c.LastReviewedAt))
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

// GetOwned loads a card only when it belongs to the given user, via the
// card -> deck -> folder ownership chain.
func (r *cardRepository) GetOwned(ctx context.Context, id int64, userID string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+cardColumns+`
FROM cards c
JOIN decks d ON d.id = c.deck_id
JOIN folders f ON f.id = d.folder_id
WHERE c.id = ? AND f.user_id = ?
`, id, userID)
	c, err := scanCard(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%d", deckID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+cardColumns+`
FROM cards c
WHERE c.deck_id = ?
ORDER BY c.created_at ASC, c.id ASC
`, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows.Scan)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepository) Update(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d", c.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET question = ?, answer = ?, difficulty_level = ?
WHERE id = ?
`, c.Question, c.Answer, c.DifficultyLevel, c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

func (r *cardRepository) QuestionExists(ctx context.Context, deckID int64, question string, excludeID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM cards
WHERE deck_id = ? AND question = ? AND id != ?
`, deckID, question, excludeID).Scan(&count)
	return count > 0, err
}

func (r *cardRepository) DueCards(ctx context.Context, scope models.DueScope, now time.Time, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching due cards: user_id=%s, folder_id=%d, deck_id=%d", scope.UserID, scope.FolderID, scope.DeckID)

	query := sqlBuilder.Select(
		"c.id", "c.deck_id", "c.question", "c.answer", "c.difficulty_level",
		"c.review_count", "c.is_fully_reviewed", "c.next_review_at", "c.last_reviewed_at", "c.created_at",
	).
		From("cards c").
		Join("decks d ON d.id = c.deck_id").
		Join("folders f ON f.id = d.folder_id").
		Where(cardScopeConds(scope)).
		Where(squirrel.Eq{"c.is_fully_reviewed": false}).
		Where(squirrel.Or{
			squirrel.Eq{"c.next_review_at": nil},
			squirrel.LtOrEq{"c.next_review_at": now},
		}).
		OrderBy("c.next_review_at IS NOT NULL", "c.next_review_at ASC", "c.id ASC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows.Scan)
		if err != nil {
			log.Error("failed to scan due card: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d due cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) CountDueBetween(ctx context.Context, userID string, after *time.Time, until time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	query := sqlBuilder.Select("COUNT(*)").
		From("cards c").
		Join("decks d ON d.id = c.deck_id").
		Join("folders f ON f.id = d.folder_id").
		Where(squirrel.Eq{"f.user_id": userID}).
		Where(squirrel.Eq{"c.is_fully_reviewed": false})

	if after != nil {
		query = query.Where(squirrel.Gt{"c.next_review_at": *after}).
			Where(squirrel.LtOrEq{"c.next_review_at": until})
	} else {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"c.next_review_at": nil},
			squirrel.LtOrEq{"c.next_review_at": until},
		})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count due cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) CountByMastery(ctx context.Context, scope models.DueScope, mastered bool) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	query := sqlBuilder.Select("COUNT(*)").
		From("cards c").
		Join("decks d ON d.id = c.deck_id").
		Join("folders f ON f.id = d.folder_id").
		Where(cardScopeConds(scope)).
		Where(squirrel.Eq{"c.is_fully_reviewed": mastered})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build mastery count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count cards by mastery: %v", err)
		return 0, err
	}
	return count, nil
}

// SubmitReview writes the advanced card state and the review event in one
// transaction. The card update is guarded by the review count the caller
// read, so a concurrent submission makes exactly one of the two fail with
// ErrStaleCard instead of silently losing an increment.
func (r *cardRepository) SubmitReview(ctx context.Context, c models.Card, prevReviewCount int, review models.Review) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("submitting review: card_id=%d, review_count=%d->%d", c.ID, prevReviewCount, c.ReviewCount)

	var reviewID int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE cards
SET review_count = ?, is_fully_reviewed = ?, next_review_at = ?, last_reviewed_at = ?
WHERE id = ? AND review_count = ?
`, c.ReviewCount, c.IsFullyReviewed, nullTime(c.NextReviewAt), nullTime(c.LastReviewedAt), c.ID, prevReviewCount)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return repository.ErrStaleCard
		}

		ins, err := tx.ExecContext(ctx, `
INSERT INTO reviews (card_id, user_id, user_answer, note, score, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, review.CardID, review.UserID, review.UserAnswer, review.Note, review.Score, review.ReviewedAt)
		if err != nil {
			return err
		}
		reviewID, err = ins.LastInsertId()
		return err
	})
	if err != nil {
		if !errors.Is(err, repository.ErrStaleCard) {
			log.Error("failed to submit review: %v", err)
		}
		return 0, err
	}
	log.Debug("review submitted: id=%d", reviewID)
	return reviewID, nil
}
