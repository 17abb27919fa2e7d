package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: name=%s, folder_id=%d", d.Name, d.FolderID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (folder_id, name, description)
VALUES (?, ?, ?)
`, d.FolderID, d.Name, d.Description)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *deckRepository) GetOwned(ctx context.Context, id int64, userID string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT d.id, d.folder_id, d.name, d.description, d.created_at, d.updated_at
FROM decks d
JOIN folders f ON f.id = d.folder_id
WHERE d.id = ? AND f.user_id = ?
`, id, userID).Scan(&d.ID, &d.FolderID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) ListByFolder(ctx context.Context, folderID int64) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: folder_id=%d", folderID)

	rows, err := r.db.QueryContext(ctx, `
SELECT d.id, d.folder_id, d.name, d.description, d.created_at, d.updated_at,
       COUNT(c.id) AS card_count
FROM decks d
LEFT JOIN cards c ON c.deck_id = d.id
WHERE d.folder_id = ?
GROUP BY d.id
ORDER BY d.created_at ASC
`, folderID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.DeckSummary
	for rows.Next() {
		var ds models.DeckSummary
		if err := rows.Scan(&ds.ID, &ds.FolderID, &ds.Name, &ds.Description, &ds.CreatedAt, &ds.UpdatedAt, &ds.CardCount); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, ds)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Update(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%d", d.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE decks
SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, d.Name, d.Description, d.ID)
	if err != nil {
		log.Error("failed to update deck: %v", err)
	}
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
	}
	return err
}

func (r *deckRepository) NameExists(ctx context.Context, folderID int64, name string, excludeID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM decks
WHERE folder_id = ? AND LOWER(name) = LOWER(?) AND id != ?
`, folderID, name, excludeID).Scan(&count)
	return count > 0, err
}
