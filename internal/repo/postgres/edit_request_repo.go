package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

var (
	ErrEditRequestNotFound = errors.New("edit request not found")
	// ErrEditRequestDecided is returned when a terminal state was already set.
	ErrEditRequestDecided = errors.New("edit request already decided")
)

const editRequestColumns = `
id, ad_id, user_id, old_values, new_values, status, reviewer_message,
reviewed_by, reviewed_at, created_at`

type EditRequestRepo struct {
	pool *pgxpool.Pool
}

func NewEditRequestRepo(pool *pgxpool.Pool) *EditRequestRepo {
	return &EditRequestRepo{pool: pool}
}

func (r *EditRequestRepo) Create(ctx context.Context, req model.AdEditRequest) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO ad_edit_requests (id, ad_id, user_id, old_values, new_values, status, created_at)
VALUES ($1, $2, $3, $4, $5, 'pending', NOW())
`, req.ID, req.AdID, req.UserID, req.OldValues, req.NewValues); err != nil {
		return fmt.Errorf("insert edit request: %w", err)
	}

	return nil
}

// NextPending returns the oldest pending edit request for the edited queue.
func (r *EditRequestRepo) NextPending(ctx context.Context) (model.AdEditRequest, error) {
	return r.queryOne(ctx, `
SELECT `+editRequestColumns+`
FROM ad_edit_requests
WHERE status = 'pending'
ORDER BY created_at ASC, id ASC
LIMIT 1
`)
}

func (r *EditRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (model.AdEditRequest, error) {
	return r.queryOne(ctx, `
SELECT `+editRequestColumns+`
FROM ad_edit_requests
WHERE id = $1
LIMIT 1
`, id)
}

// LatestPendingByAd resolves a direct lookup by ad id to its newest open
// request.
func (r *EditRequestRepo) LatestPendingByAd(ctx context.Context, adID uuid.UUID) (model.AdEditRequest, error) {
	return r.queryOne(ctx, `
SELECT `+editRequestColumns+`
FROM ad_edit_requests
WHERE ad_id = $1 AND status = 'pending'
ORDER BY created_at DESC, id DESC
LIMIT 1
`, adID)
}

func (r *EditRequestRepo) HasPendingForAd(ctx context.Context, adID uuid.UUID) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM ad_edit_requests WHERE ad_id = $1 AND status = 'pending')
`, adID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending edit request: %w", err)
	}

	return exists, nil
}

func (r *EditRequestRepo) SetApproved(ctx context.Context, id, reviewerID uuid.UUID, at time.Time) error {
	return r.decide(ctx, `
UPDATE ad_edit_requests
SET status = 'approved', reviewed_by = $2, reviewed_at = $3
WHERE id = $1 AND status = 'pending'
`, id, reviewerID, at.UTC())
}

func (r *EditRequestRepo) SetRejected(ctx context.Context, id, reviewerID uuid.UUID, message string, at time.Time) error {
	return r.decide(ctx, `
UPDATE ad_edit_requests
SET status = 'rejected', reviewer_message = $4, reviewed_by = $2, reviewed_at = $3
WHERE id = $1 AND status = 'pending'
`, id, reviewerID, at.UTC(), strings.TrimSpace(message))
}

// decide flips a pending request exactly once; an already-decided row is a
// conflict, a missing row is not found.
func (r *EditRequestRepo) decide(ctx context.Context, query string, id uuid.UUID, args ...any) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("decide edit request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM ad_edit_requests WHERE id = $1)
`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check edit request existence: %w", err)
		}
		if exists {
			return ErrEditRequestDecided
		}
		return ErrEditRequestNotFound
	}

	return nil
}

func (r *EditRequestRepo) queryOne(ctx context.Context, query string, args ...any) (model.AdEditRequest, error) {
	if r.pool == nil {
		return model.AdEditRequest{}, fmt.Errorf("postgres pool is nil")
	}

	var req model.AdEditRequest
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&req.ID, &req.AdID, &req.UserID, &req.OldValues, &req.NewValues, &req.Status,
		&req.ReviewerMessage, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AdEditRequest{}, ErrEditRequestNotFound
		}
		return model.AdEditRequest{}, fmt.Errorf("query edit request: %w", err)
	}

	return req, nil
}
