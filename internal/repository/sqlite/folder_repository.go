package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

type folderRepository struct {
	db *sql.DB
}

// NewFolderRepository creates a new FolderRepository implementation
func NewFolderRepository(db *sql.DB) repository.FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Insert(ctx context.Context, f models.Folder) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("inserting folder: name=%s, user_id=%s", f.Name, f.UserID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO folders (user_id, name, description)
VALUES (?, ?, ?)
`, f.UserID, f.Name, f.Description)
	if err != nil {
		log.Error("failed to insert folder: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *folderRepository) GetOwned(ctx context.Context, id int64, userID string) (*models.Folder, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")

	var f models.Folder
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, description, created_at
FROM folders
WHERE id = ? AND user_id = ?
`, id, userID).Scan(&f.ID, &f.UserID, &f.Name, &f.Description, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("folder not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get folder: %v", err)
		return nil, err
	}
	return &f, nil
}

func (r *folderRepository) ListSummaries(ctx context.Context, userID string) ([]models.FolderSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("listing folders: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT f.id, f.user_id, f.name, f.description, f.created_at,
       COUNT(DISTINCT d.id) AS deck_count,
       COUNT(c.id) AS card_count
FROM folders f
LEFT JOIN decks d ON d.folder_id = f.id
LEFT JOIN cards c ON c.deck_id = d.id
WHERE f.user_id = ?
GROUP BY f.id
ORDER BY f.created_at ASC
`, userID)
	if err != nil {
		log.Error("failed to list folders: %v", err)
		return nil, err
	}
	defer rows.Close()

	var folders []models.FolderSummary
	for rows.Next() {
		var fs models.FolderSummary
		if err := rows.Scan(&fs.ID, &fs.UserID, &fs.Name, &fs.Description, &fs.CreatedAt, &fs.DeckCount, &fs.CardCount); err != nil {
			log.Error("failed to scan folder row: %v", err)
			return nil, err
		}
		folders = append(folders, fs)
	}
	log.Debug("found %d folders", len(folders))
	return folders, rows.Err()
}

func (r *folderRepository) Update(ctx context.Context, f models.Folder) error {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("updating folder: id=%d", f.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE folders
SET name = ?, description = ?
WHERE id = ?
`, f.Name, f.Description, f.ID)
	if err != nil {
		log.Error("failed to update folder: %v", err)
	}
	return err
}

func (r *folderRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("deleting folder: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete folder: %v", err)
	}
	return err
}

func (r *folderRepository) NameExists(ctx context.Context, userID, name string, excludeID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM folders
WHERE user_id = ? AND LOWER(name) = LOWER(?) AND id != ?
`, userID, name, excludeID).Scan(&count)
	return count > 0, err
}
