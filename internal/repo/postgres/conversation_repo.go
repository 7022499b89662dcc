package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// GetOrCreate returns the single conversation for (ad, buyer), creating it on
// first contact. The unique index on (ad_id, buyer_id) backs the upsert.
func (r *ConversationRepo) GetOrCreate(ctx context.Context, adID, buyerID, sellerID uuid.UUID) (model.Conversation, error) {
	if r.pool == nil {
		return model.Conversation{}, fmt.Errorf("postgres pool is nil")
	}

	var c model.Conversation
	err := r.pool.QueryRow(ctx, `
INSERT INTO conversations (id, ad_id, buyer_id, seller_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
ON CONFLICT (ad_id, buyer_id) DO UPDATE SET updated_at = conversations.updated_at
RETURNING id, ad_id, buyer_id, seller_id, created_at, updated_at
`, uuid.New(), adID, buyerID, sellerID).Scan(
		&c.ID, &c.AdID, &c.BuyerID, &c.SellerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("upsert conversation: %w", err)
	}

	return c, nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Conversation, error) {
	if r.pool == nil {
		return model.Conversation{}, fmt.Errorf("postgres pool is nil")
	}

	var c model.Conversation
	err := r.pool.QueryRow(ctx, `
SELECT id, ad_id, buyer_id, seller_id, created_at, updated_at
FROM conversations
WHERE id = $1
`, id).Scan(&c.ID, &c.AdID, &c.BuyerID, &c.SellerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Conversation{}, ErrConversationNotFound
		}
		return model.Conversation{}, fmt.Errorf("query conversation: %w", err)
	}

	return c, nil
}

// ListByUser returns conversations where the user is either party, most
// recently active first.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Conversation, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, ad_id, buyer_id, seller_id, created_at, updated_at
FROM conversations
WHERE buyer_id = $1 OR seller_id = $1
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	conversations := make([]model.Conversation, 0)
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.AdID, &c.BuyerID, &c.SellerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation rows: %w", err)
	}

	return conversations, nil
}

func (r *ConversationRepo) Touch(ctx context.Context, id uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE conversations SET updated_at = NOW() WHERE id = $1
`, id); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}

	return nil
}
