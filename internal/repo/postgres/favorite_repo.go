package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

type FavoriteRepo struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepo(pool *pgxpool.Pool) *FavoriteRepo {
	return &FavoriteRepo{pool: pool}
}

// Add is idempotent: favoriting an already favorited ad is a no-op.
func (r *FavoriteRepo) Add(ctx context.Context, userID, adID uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO favorites (user_id, ad_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id, ad_id) DO NOTHING
`, userID, adID); err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}

	return nil
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID, adID uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
DELETE FROM favorites WHERE user_id = $1 AND ad_id = $2
`, userID, adID); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	return nil
}

func (r *FavoriteRepo) Exists(ctx context.Context, userID, adID uuid.UUID) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND ad_id = $2)
`, userID, adID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	return exists, nil
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Favorite, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, ad_id, created_at
FROM favorites
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.AdID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite rows: %w", err)
	}

	return favorites, nil
}

func (r *FavoriteRepo) CountByAd(ctx context.Context, adID uuid.UUID) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM favorites WHERE ad_id = $1`, adID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}

	return count, nil
}
