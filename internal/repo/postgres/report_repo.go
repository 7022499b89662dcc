package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) Create(ctx context.Context, report model.Report) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO ad_reports (ad_id, reporter_id, reason, details, created_at)
VALUES ($1, $2, $3, $4, NOW())
RETURNING id
`, report.AdID, report.ReporterID, report.Reason, report.Details).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	return id, nil
}

func (r *ReportRepo) ListOpen(ctx context.Context, limit, offset int) ([]model.Report, int, error) {
	return r.list(ctx, "is_resolved = FALSE", limit, offset)
}

func (r *ReportRepo) ListByAd(ctx context.Context, adID uuid.UUID) ([]model.Report, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, ad_id, reporter_id, reason, details, is_resolved, resolved_by, resolved_at, created_at
FROM ad_reports
WHERE ad_id = $1
ORDER BY created_at DESC
`, adID)
	if err != nil {
		return nil, fmt.Errorf("query reports by ad: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

func (r *ReportRepo) Resolve(ctx context.Context, id int64, resolvedBy uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE ad_reports
SET is_resolved = TRUE, resolved_by = $2, resolved_at = NOW()
WHERE id = $1 AND is_resolved = FALSE
`, id, resolvedBy)
	if err != nil {
		return fmt.Errorf("resolve report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	return nil
}

// ResolveByAd closes every open report against an ad, used when the ad itself
// is actioned.
func (r *ReportRepo) ResolveByAd(ctx context.Context, adID uuid.UUID, resolvedBy uuid.UUID) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE ad_reports
SET is_resolved = TRUE, resolved_by = $2, resolved_at = NOW()
WHERE ad_id = $1 AND is_resolved = FALSE
`, adID, resolvedBy)
	if err != nil {
		return 0, fmt.Errorf("resolve reports by ad: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *ReportRepo) list(ctx context.Context, where string, limit, offset int) ([]model.Report, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ad_reports WHERE `+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, ad_id, reporter_id, reason, details, is_resolved, resolved_by, resolved_at, created_at
FROM ad_reports
WHERE `+where+`
ORDER BY created_at ASC, id ASC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	reports, err := collectReports(rows)
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func collectReports(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]model.Report, error) {
	reports := make([]model.Report, 0)
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(
			&rep.ID, &rep.AdID, &rep.ReporterID, &rep.Reason, &rep.Details,
			&rep.IsResolved, &rep.ResolvedBy, &rep.ResolvedAt, &rep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}

	return reports, nil
}
