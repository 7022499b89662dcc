package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

type AdImageRepo struct {
	pool *pgxpool.Pool
}

func NewAdImageRepo(pool *pgxpool.Pool) *AdImageRepo {
	return &AdImageRepo{pool: pool}
}

// ReplaceAll swaps the ad's image set atomically, preserving the given order.
func (r *AdImageRepo) ReplaceAll(ctx context.Context, adID uuid.UUID, objectKeys []string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	return WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM ad_images WHERE ad_id = $1`, adID); err != nil {
			return fmt.Errorf("delete ad images: %w", err)
		}

		for i, key := range objectKeys {
			if _, err := tx.Exec(ctx, `
INSERT INTO ad_images (ad_id, object_key, sort_order, created_at)
VALUES ($1, $2, $3, NOW())
`, adID, key, i); err != nil {
				return fmt.Errorf("insert ad image: %w", err)
			}
		}

		return nil
	})
}

func (r *AdImageRepo) ListByAd(ctx context.Context, adID uuid.UUID) ([]model.AdImage, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, ad_id, object_key, sort_order, created_at
FROM ad_images
WHERE ad_id = $1
ORDER BY sort_order ASC, id ASC
`, adID)
	if err != nil {
		return nil, fmt.Errorf("query ad images: %w", err)
	}
	defer rows.Close()

	images := make([]model.AdImage, 0)
	for rows.Next() {
		var img model.AdImage
		if err := rows.Scan(&img.ID, &img.AdID, &img.ObjectKey, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ad image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ad image rows: %w", err)
	}

	return images, nil
}

func (r *AdImageRepo) DeleteByAd(ctx context.Context, adID uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM ad_images WHERE ad_id = $1`, adID); err != nil {
		return fmt.Errorf("delete ad images: %w", err)
	}

	return nil
}
