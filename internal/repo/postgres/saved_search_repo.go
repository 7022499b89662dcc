package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

var ErrSavedSearchNotFound = errors.New("saved search not found")

type SavedSearchRepo struct {
	pool *pgxpool.Pool
}

func NewSavedSearchRepo(pool *pgxpool.Pool) *SavedSearchRepo {
	return &SavedSearchRepo{pool: pool}
}

func (r *SavedSearchRepo) Create(ctx context.Context, search model.SavedSearch) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO saved_searches (user_id, name, query, created_at)
VALUES ($1, $2, $3, NOW())
RETURNING id
`, search.UserID, search.Name, search.Query).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert saved search: %w", err)
	}

	return id, nil
}

func (r *SavedSearchRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SavedSearch, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, name, query, created_at
FROM saved_searches
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("query saved searches: %w", err)
	}
	defer rows.Close()

	searches := make([]model.SavedSearch, 0)
	for rows.Next() {
		var s model.SavedSearch
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Query, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		searches = append(searches, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved search rows: %w", err)
	}

	return searches, nil
}

// Delete only removes the row when it belongs to the caller.
func (r *SavedSearchRepo) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM saved_searches WHERE id = $1 AND user_id = $2
`, id, userID)
	if err != nil {
		return fmt.Errorf("delete saved search: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSavedSearchNotFound
	}

	return nil
}
