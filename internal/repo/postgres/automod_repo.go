package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

type AutoModRepo struct {
	pool *pgxpool.Pool
}

func NewAutoModRepo(pool *pgxpool.Pool) *AutoModRepo {
	return &AutoModRepo{pool: pool}
}

func (r *AutoModRepo) List(ctx context.Context) ([]model.AutoModerationSetting, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT key, enabled, threshold, updated_at
FROM auto_moderation_settings
ORDER BY key
`)
	if err != nil {
		return nil, fmt.Errorf("query auto moderation settings: %w", err)
	}
	defer rows.Close()

	settings := make([]model.AutoModerationSetting, 0)
	for rows.Next() {
		var s model.AutoModerationSetting
		if err := rows.Scan(&s.Key, &s.Enabled, &s.Threshold, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan auto moderation setting: %w", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate auto moderation rows: %w", err)
	}

	return settings, nil
}

// Get returns zero Enabled/Threshold when the key has never been set.
func (r *AutoModRepo) Get(ctx context.Context, key string) (model.AutoModerationSetting, error) {
	if r.pool == nil {
		return model.AutoModerationSetting{}, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT key, enabled, threshold, updated_at
FROM auto_moderation_settings
WHERE key = $1
`, key)
	if err != nil {
		return model.AutoModerationSetting{}, fmt.Errorf("query auto moderation setting: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.AutoModerationSetting{}, fmt.Errorf("query auto moderation setting: %w", err)
		}
		return model.AutoModerationSetting{Key: key}, nil
	}

	var s model.AutoModerationSetting
	if err := rows.Scan(&s.Key, &s.Enabled, &s.Threshold, &s.UpdatedAt); err != nil {
		return model.AutoModerationSetting{}, fmt.Errorf("scan auto moderation setting: %w", err)
	}

	return s, nil
}

func (r *AutoModRepo) Upsert(ctx context.Context, setting model.AutoModerationSetting) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO auto_moderation_settings (key, enabled, threshold, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (key) DO UPDATE SET enabled = EXCLUDED.enabled, threshold = EXCLUDED.threshold, updated_at = NOW()
`, setting.Key, setting.Enabled, setting.Threshold); err != nil {
		return fmt.Errorf("upsert auto moderation setting: %w", err)
	}

	return nil
}
