package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg model.Message) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO messages (conversation_id, sender_id, body, is_read, created_at)
VALUES ($1, $2, $3, FALSE, NOW())
RETURNING id
`, msg.ConversationID, msg.SenderID, msg.Body).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	return id, nil
}

func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]model.Message, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, conversation_id, sender_id, body, is_read, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3
`, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}

	return messages, nil
}

// MarkRead flags every message in the conversation not sent by the reader.
func (r *MessageRepo) MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE messages
SET is_read = TRUE
WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE
`, conversationID, readerID)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UnreadCount counts messages addressed to the user across all their
// conversations.
func (r *MessageRepo) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM messages m
JOIN conversations c ON c.id = m.conversation_id
WHERE (c.buyer_id = $1 OR c.seller_id = $1)
  AND m.sender_id <> $1
  AND m.is_read = FALSE
`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}

	return count, nil
}
