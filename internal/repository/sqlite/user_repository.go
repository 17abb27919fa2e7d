package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, u models.User) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: username=%s", u.Username)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, full_name, username, email, password_hash)
VALUES (?, ?, ?, ?, ?)
`, u.ID, u.FullName, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		log.Error("failed to insert user: %v", err)
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	var u models.User
	var lastStudy sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, full_name, username, email, password_hash, study_streak, last_study_date, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.StudyStreak, &lastStudy, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	u.LastStudyDate = timePtr(lastStudy)
	return &u, nil
}

// GetByIdentifier looks a user up by username or email, whichever matches.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	var u models.User
	var lastStudy sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, full_name, username, email, password_hash, study_streak, last_study_date, created_at
FROM users
WHERE username = ? OR email = ?
`, identifier, identifier).Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.StudyStreak, &lastStudy, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: identifier=%s", identifier)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by identifier: %v", err)
		return nil, err
	}
	u.LastStudyDate = timePtr(lastStudy)
	return &u, nil
}

func (r *userRepository) UpdateStudyStreak(ctx context.Context, id string, streak int, lastStudyDate *time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating study streak: id=%s, streak=%d", id, streak)

	_, err := r.db.ExecContext(ctx, `
UPDATE users
SET study_streak = ?, last_study_date = ?
WHERE id = ?
`, streak, nullTime(lastStudyDate), id)
	if err != nil {
		log.Error("failed to update study streak: %v", err)
	}
	return err
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	return count > 0, err
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	return count > 0, err
}
