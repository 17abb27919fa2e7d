package sqlite

import (
	"context"
	"database/sql"

	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/models"
	"github.com/hailem/recallbox/internal/repository"
)

type conversationRepository struct {
	db *sql.DB
}

// NewConversationRepository creates a new ConversationRepository implementation
func NewConversationRepository(db *sql.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Insert(ctx context.Context, conv models.Conversation) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("conversation_repo")
	log.Debug("inserting conversation: user_id=%s", conv.UserID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO ai_conversations (user_id, user_query, ai_response)
VALUES (?, ?, ?)
`, conv.UserID, conv.UserQuery, conv.Response)
	if err != nil {
		log.Error("failed to insert conversation: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	log := logger.FromContext(ctx).WithPrefix("conversation_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, user_query, ai_response, created_at
FROM ai_conversations
WHERE user_id = ?
ORDER BY created_at DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to list conversations: %v", err)
		return nil, err
	}
	defer rows.Close()

	var convs []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserQuery, &c.Response, &c.CreatedAt); err != nil {
			log.Error("failed to scan conversation row: %v", err)
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}
