package testutil

import (
	"database/sql"
	"embed"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hailem/recallbox/internal/models"
)

//go:embed migrations/*.sql
var testMigrationsFS embed.FS

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is configured with foreign keys enabled.
func NewTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)

	// In-memory databases vanish when their last connection closes.
	db.SetMaxOpenConns(1)

	migrations := []string{
		"migrations/0001_init.sql",
		"migrations/0002_stats_cache.sql",
	}

	for _, migration := range migrations {
		sqlBytes, err := testMigrationsFS.ReadFile(migration)
		require.NoError(t, err, "failed to read migration %s", migration)

		_, err = db.Exec(string(sqlBytes))
		require.NoError(t, err, "failed to apply migration %s", migration)
	}

	return db
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedUser inserts a user row and returns its id.
func SeedUser(t *testing.T, db *sql.DB, id, username string) string {
	_, err := db.Exec(`
INSERT INTO users (id, full_name, username, email, password_hash)
VALUES (?, ?, ?, ?, 'x')
`, id, "Test User", username, username+"@example.com")
	require.NoError(t, err)
	return id
}

// SeedFolder inserts a folder row and returns its id.
func SeedFolder(t *testing.T, db *sql.DB, userID, name string) int64 {
	res, err := db.Exec(`INSERT INTO folders (user_id, name) VALUES (?, ?)`, userID, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SeedDeck inserts a deck row and returns its id.
func SeedDeck(t *testing.T, db *sql.DB, folderID int64, name string) int64 {
	res, err := db.Exec(`INSERT INTO decks (folder_id, name) VALUES (?, ?)`, folderID, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SeedCard inserts a card row with the given review state and returns its id.
func SeedCard(t *testing.T, db *sql.DB, deckID int64, question string, reviewCount int, mastered bool, nextReviewAt *time.Time) int64 {
	var next sql.NullTime
	if nextReviewAt != nil {
		next = sql.NullTime{Time: *nextReviewAt, Valid: true}
	}
	res, err := db.Exec(`
INSERT INTO cards (deck_id, question, answer, review_count, is_fully_reviewed, next_review_at)
VALUES (?, ?, 'answer', ?, ?, ?)
`, deckID, question, reviewCount, mastered, next)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SeedReview inserts a review row.
func SeedReview(t *testing.T, db *sql.DB, rev models.Review) int64 {
	res, err := db.Exec(`
INSERT INTO reviews (card_id, user_id, user_answer, note, score, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, rev.CardID, rev.UserID, rev.UserAnswer, rev.Note, rev.Score, rev.ReviewedAt)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
