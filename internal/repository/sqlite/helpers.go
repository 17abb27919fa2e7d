package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
)

// Helper functions shared across repository implementations

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}

// cardScopeConds builds WHERE conditions for queries over the cards table
// aliased c, joined to decks d and folders f. The narrowest scope wins.
func cardScopeConds(scope models.DueScope) squirrel.And {
	conds := squirrel.And{squirrel.Eq{"f.user_id": scope.UserID}}
	switch {
	case scope.DeckID != 0:
		conds = append(conds, squirrel.Eq{"c.deck_id": scope.DeckID})
	case scope.FolderID != 0:
		conds = append(conds, squirrel.Eq{"d.folder_id": scope.FolderID})
	}
	return conds
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
