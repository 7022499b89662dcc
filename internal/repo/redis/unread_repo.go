package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const unreadPrefix = "unread:"

// UnreadRepo keeps the per-user unread message badge. Postgres stays the
// source of truth; this counter only avoids a join on every poll.
type UnreadRepo struct {
	client *goredis.Client
}

func NewUnreadRepo(client *goredis.Client) *UnreadRepo {
	return &UnreadRepo{client: client}
}

func (r *UnreadRepo) Increment(ctx context.Context, userID uuid.UUID) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := r.client.Incr(ctx, unreadKey(userID)).Err(); err != nil {
		return fmt.Errorf("increment unread counter: %w", err)
	}

	return nil
}

// Get reports the badge value and whether the counter exists at all. A
// missing counter means the caller should recount from Postgres.
func (r *UnreadRepo) Get(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	if r.client == nil {
		return 0, false, fmt.Errorf("redis client is nil")
	}

	count, err := r.client.Get(ctx, unreadKey(userID)).Int64()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get unread counter: %w", err)
	}

	return count, true, nil
}

// Set overwrites the badge with the authoritative count from Postgres.
func (r *UnreadRepo) Set(ctx context.Context, userID uuid.UUID, count int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := r.client.Set(ctx, unreadKey(userID), count, 0).Err(); err != nil {
		return fmt.Errorf("set unread counter: %w", err)
	}

	return nil
}

func unreadKey(userID uuid.UUID) string {
	return unreadPrefix + userID.String()
}
