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

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
)

var ErrAdNotFound = errors.New("ad not found")

const adColumns = `
id, slug, user_id, title, description, category_id, subcategory_id, custom_fields,
price, price_type, mrp, discount, ad_type, product_types, features,
division, district, area,
status, needs_verification, first_time_poster, is_unconfirmed, is_deactivated, is_archived, payment_status,
rejection_reason, rejection_reasons, rejection_message, duplicate_of_ad_id,
last_reviewed_by, last_reviewed_at,
is_featured, promotion_type, promotion_expires_at, expires_at,
views_count, created_at, updated_at`

type AdRepo struct {
	pool *pgxpool.Pool
}

func NewAdRepo(pool *pgxpool.Pool) *AdRepo {
	return &AdRepo{pool: pool}
}

// AdReviewPatch carries the editable ad fields persisted on every moderator
// save. Promotion and expiry columns are included because the service
// re-derives them before writing.
type AdReviewPatch struct {
	Title         string
	Description   string
	CategoryID    *int64
	SubcategoryID *int64
	CustomFields  map[string]any

	Price     *float64
	PriceType enums.PriceType
	MRP       *float64
	Discount  *float64

	AdType       string
	ProductTypes []string
	Features     []string

	Division string
	District string
	Area     string

	IsFeatured         bool
	PromotionType      enums.PromotionType
	PromotionExpiresAt *time.Time
	ExpiresAt          *time.Time
}

func (r *AdRepo) Create(ctx context.Context, ad model.Ad) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO ads (
	id, slug, user_id, title, description, category_id, subcategory_id, custom_fields,
	price, price_type, mrp, discount, ad_type, product_types, features,
	division, district, area,
	status, needs_verification, first_time_poster, is_unconfirmed, payment_status,
	expires_at, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8,
	$9, $10, $11, $12, $13, $14, $15,
	$16, $17, $18,
	$19, $20, $21, $22, $23,
	$24, NOW(), NOW()
)
`,
		ad.ID, ad.Slug, ad.UserID, ad.Title, ad.Description, ad.CategoryID, ad.SubcategoryID, ad.CustomFields,
		ad.Price, ad.PriceType, ad.MRP, ad.Discount, ad.AdType, ad.ProductTypes, ad.Features,
		ad.Division, ad.District, ad.Area,
		ad.Status, ad.NeedsVerification, ad.FirstTimePoster, ad.IsUnconfirmed, ad.PaymentStatus,
		ad.ExpiresAt,
	); err != nil {
		return fmt.Errorf("insert ad: %w", err)
	}

	return nil
}

func (r *AdRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Ad, error) {
	return r.queryOne(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1 LIMIT 1`, id)
}

func (r *AdRepo) GetBySlug(ctx context.Context, slug string) (model.Ad, error) {
	return r.queryOne(ctx, `SELECT `+adColumns+` FROM ads WHERE slug = $1 LIMIT 1`, strings.TrimSpace(slug))
}

// NextPending returns the oldest pending ad for the general/member queues.
func (r *AdRepo) NextPending(ctx context.Context, firstTimePoster bool) (model.Ad, error) {
	return r.queryOne(ctx, `
SELECT `+adColumns+`
FROM ads
WHERE status = 'pending'
  AND first_time_poster = $1
  AND is_archived = FALSE
ORDER BY created_at ASC, id ASC
LIMIT 1
`, firstTimePoster)
}

// NextNeedsVerification returns the oldest approved ad still flagged for
// verification.
func (r *AdRepo) NextNeedsVerification(ctx context.Context) (model.Ad, error) {
	return r.queryOne(ctx, `
SELECT `+adColumns+`
FROM ads
WHERE status = 'approved'
  AND needs_verification = TRUE
  AND is_archived = FALSE
ORDER BY created_at ASC, id ASC
LIMIT 1
`)
}

func (r *AdRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM ads WHERE user_id = $1
`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count ads by user: %w", err)
	}

	return count, nil
}

func (r *AdRepo) UpdateReview(ctx context.Context, id uuid.UUID, patch AdReviewPatch) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE ads
SET
	title = $2,
	description = $3,
	category_id = $4,
	subcategory_id = $5,
	custom_fields = $6,
	price = $7,
	price_type = $8,
	mrp = $9,
	discount = $10,
	ad_type = $11,
	product_types = $12,
	features = $13,
	division = $14,
	district = $15,
	area = $16,
	is_featured = $17,
	promotion_type = $18,
	promotion_expires_at = $19,
	expires_at = $20,
	updated_at = NOW()
WHERE id = $1
`,
		id,
		patch.Title, patch.Description, patch.CategoryID, patch.SubcategoryID, patch.CustomFields,
		patch.Price, patch.PriceType, patch.MRP, patch.Discount,
		patch.AdType, patch.ProductTypes, patch.Features,
		patch.Division, patch.District, patch.Area,
		patch.IsFeatured, patch.PromotionType, patch.PromotionExpiresAt, patch.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update ad review fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAdNotFound
	}

	return nil
}

func (r *AdRepo) SetApproved(ctx context.Context, id, reviewerID uuid.UUID, at time.Time) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE ads
SET
	status = 'approved',
	needs_verification = FALSE,
	rejection_reason = '',
	rejection_reasons = '{}',
	rejection_message = '',
	duplicate_of_ad_id = NULL,
	last_reviewed_by = $2,
	last_reviewed_at = $3,
	updated_at = NOW()
WHERE id = $1
`, id, reviewerID, at.UTC())
	if err != nil {
		return fmt.Errorf("mark ad approved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAdNotFound
	}

	return nil
}

func (r *AdRepo) SetRejected(
	ctx context.Context,
	id, reviewerID uuid.UUID,
	reasons []string,
	message string,
	duplicateOf *uuid.UUID,
	at time.Time,
) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	primary := ""
	if len(reasons) > 0 {
		primary = reasons[0]
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE ads
SET
	status = 'rejected',
	needs_verification = FALSE,
	rejection_reason = $2,
	rejection_reasons = $3,
	rejection_message = $4,
	duplicate_of_ad_id = $5,
	last_reviewed_by = $6,
	last_reviewed_at = $7,
	updated_at = NOW()
WHERE id = $1
`, id, primary, reasons, strings.TrimSpace(message), duplicateOf, reviewerID, at.UTC())
	if err != nil {
		return fmt.Errorf("mark ad rejected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAdNotFound
	}

	return nil
}

func (r *AdRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE ads SET views_count = views_count + 1 WHERE id = $1
`, id); err != nil {
		return fmt.Errorf("increment ad views: %w", err)
	}

	return nil
}

func (r *AdRepo) SetSold(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.ownerFlagUpdate(ctx, `
UPDATE ads SET status = 'sold', updated_at = NOW()
WHERE id = $1 AND user_id = $2 AND status = 'approved'
`, id, ownerID)
}

func (r *AdRepo) SetDeactivatedByOwner(ctx context.Context, id, ownerID uuid.UUID, deactivated bool) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE ads SET is_deactivated = $3, updated_at = NOW()
WHERE id = $1 AND user_id = $2
`, id, ownerID, deactivated)
	if err != nil {
		return fmt.Errorf("set ad deactivated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAdNotFound
	}

	return nil
}

func (r *AdRepo) ownerFlagUpdate(ctx context.Context, query string, id, ownerID uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("update ad flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAdNotFound
	}

	return nil
}

// UpdateOwnerPending lets the owner edit a still-pending ad in place. Approved
// ads go through ad_edit_requests instead.
func (r *AdRepo) UpdateOwnerPending(ctx context.Context, id, ownerID uuid.UUID, patch AdReviewPatch) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE ads
SET
	title = $3,
	description = $4,
	category_id = $5,
	subcategory_id = $6,
	custom_fields = $7,
	price = $8,
	price_type = $9,
	mrp = $10,
	discount = $11,
	ad_type = $12,
	product_types = $13,
	features = $14,
	division = $15,
	district = $16,
	area = $17,
	updated_at = NOW()
WHERE id = $1 AND user_id = $2 AND status = 'pending'
`,
		id, ownerID,
		patch.Title, patch.Description, patch.CategoryID, patch.SubcategoryID, patch.CustomFields,
		patch.Price, patch.PriceType, patch.MRP, patch.Discount,
		patch.AdType, patch.ProductTypes, patch.Features,
		patch.Division, patch.District, patch.Area,
	)
	if err != nil {
		return fmt.Errorf("update pending ad: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAdNotFound
	}

	return nil
}

type BulkResult struct {
	Matched int64
}

func (r *AdRepo) BulkApprove(ctx context.Context, ids []uuid.UUID, reviewerID uuid.UUID, at time.Time) (BulkResult, error) {
	return r.bulkExec(ctx, `
UPDATE ads
SET status = 'approved', needs_verification = FALSE,
	last_reviewed_by = $2, last_reviewed_at = $3, updated_at = NOW()
WHERE id = ANY($1)
`, ids, reviewerID, at.UTC())
}

func (r *AdRepo) BulkReject(ctx context.Context, ids []uuid.UUID, reviewerID uuid.UUID, reasons []string, at time.Time) (BulkResult, error) {
	primary := ""
	if len(reasons) > 0 {
		primary = reasons[0]
	}
	return r.bulkExec(ctx, `
UPDATE ads
SET status = 'rejected', needs_verification = FALSE,
	rejection_reason = $4, rejection_reasons = $5,
	last_reviewed_by = $2, last_reviewed_at = $3, updated_at = NOW()
WHERE id = ANY($1)
`, ids, reviewerID, at.UTC(), primary, reasons)
}

func (r *AdRepo) BulkSetDeactivated(ctx context.Context, ids []uuid.UUID, deactivated bool) (BulkResult, error) {
	return r.bulkExec(ctx, `
UPDATE ads SET is_deactivated = $2, updated_at = NOW() WHERE id = ANY($1)
`, ids, deactivated)
}

func (r *AdRepo) BulkSetArchived(ctx context.Context, ids []uuid.UUID, archived bool) (BulkResult, error) {
	return r.bulkExec(ctx, `
UPDATE ads SET is_archived = $2, updated_at = NOW() WHERE id = ANY($1)
`, ids, archived)
}

func (r *AdRepo) bulkExec(ctx context.Context, query string, ids []uuid.UUID, args ...any) (BulkResult, error) {
	if r.pool == nil {
		return BulkResult{}, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return BulkResult{}, nil
	}

	tag, err := r.pool.Exec(ctx, query, append([]any{ids}, args...)...)
	if err != nil {
		return BulkResult{}, fmt.Errorf("bulk update ads: %w", err)
	}

	return BulkResult{Matched: tag.RowsAffected()}, nil
}

// ArchiveExpired flips is_archived on approved ads past their expiry.
func (r *AdRepo) ArchiveExpired(ctx context.Context, now time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE ads
SET is_archived = TRUE, updated_at = NOW()
WHERE is_archived = FALSE
  AND expires_at IS NOT NULL
  AND expires_at < $1
`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("archive expired ads: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListArchivedBefore returns ads archived before the cutoff, oldest first.
func (r *AdRepo) ListArchivedBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Ad, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+adColumns+`
FROM ads
WHERE is_archived = TRUE
  AND updated_at < $1
ORDER BY updated_at ASC
LIMIT $2
`, cutoff.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("query archived ads: %w", err)
	}
	defer rows.Close()

	ads := make([]model.Ad, 0)
	for rows.Next() {
		ad, scanErr := scanAd(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan archived ad: %w", scanErr)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archived ad rows: %w", err)
	}

	return ads, nil
}

// Purge removes the ad row entirely. Only the retention job calls this;
// everything user-facing soft-deletes through flags instead.
func (r *AdRepo) Purge(ctx context.Context, id uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM ads WHERE id = $1 AND is_archived = TRUE`, id); err != nil {
		return fmt.Errorf("purge ad: %w", err)
	}

	return nil
}

func (r *AdRepo) queryOne(ctx context.Context, query string, args ...any) (model.Ad, error) {
	if r.pool == nil {
		return model.Ad{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, query, args...)
	ad, err := scanAd(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Ad{}, ErrAdNotFound
		}
		return model.Ad{}, fmt.Errorf("query ad: %w", err)
	}

	return ad, nil
}

func scanAd(row pgx.Row) (model.Ad, error) {
	var ad model.Ad
	err := row.Scan(
		&ad.ID, &ad.Slug, &ad.UserID, &ad.Title, &ad.Description, &ad.CategoryID, &ad.SubcategoryID, &ad.CustomFields,
		&ad.Price, &ad.PriceType, &ad.MRP, &ad.Discount, &ad.AdType, &ad.ProductTypes, &ad.Features,
		&ad.Division, &ad.District, &ad.Area,
		&ad.Status, &ad.NeedsVerification, &ad.FirstTimePoster, &ad.IsUnconfirmed, &ad.IsDeactivated, &ad.IsArchived, &ad.PaymentStatus,
		&ad.RejectionReason, &ad.RejectionReasons, &ad.RejectionMessage, &ad.DuplicateOfAdID,
		&ad.LastReviewedBy, &ad.LastReviewedAt,
		&ad.IsFeatured, &ad.PromotionType, &ad.PromotionExpiresAt, &ad.ExpiresAt,
		&ad.ViewsCount, &ad.CreatedAt, &ad.UpdatedAt,
	)
	return ad, err
}
