package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, entry model.AdAuditLog) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO ad_audit_logs (ad_id, actor_id, action, details, created_at)
VALUES ($1, $2, $3, $4, NOW())
`, entry.AdID, entry.ActorID, entry.Action, entry.Details); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}

	return nil
}

func (r *AuditRepo) ListByAd(ctx context.Context, adID uuid.UUID) ([]model.AdAuditLog, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, ad_id, actor_id, action, details, created_at
FROM ad_audit_logs
WHERE ad_id = $1
ORDER BY created_at DESC, id DESC
`, adID)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

// ListByRange supports moderator activity review over a time window.
func (r *AuditRepo) ListByRange(ctx context.Context, from, to time.Time, actorID *uuid.UUID, limit, offset int) ([]model.AdAuditLog, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	if limit <= 0 {
		limit = 100
	}

	args := []any{from, to, limit, offset}
	query := `
SELECT id, ad_id, actor_id, action, details, created_at
FROM ad_audit_logs
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at DESC, id DESC
LIMIT $3 OFFSET $4
`
	if actorID != nil {
		args = []any{from, to, *actorID, limit, offset}
		query = `
SELECT id, ad_id, actor_id, action, details, created_at
FROM ad_audit_logs
WHERE created_at >= $1 AND created_at < $2 AND actor_id = $3
ORDER BY created_at DESC, id DESC
LIMIT $4 OFFSET $5
`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func collectAuditLogs(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]model.AdAuditLog, error) {
	logs := make([]model.AdAuditLog, 0)
	for rows.Next() {
		var entry model.AdAuditLog
		if err := rows.Scan(&entry.ID, &entry.AdID, &entry.ActorID, &entry.Action, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log rows: %w", err)
	}

	return logs, nil
}
