package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
)

// AdminSearchFilters compose into a single WHERE clause. Empty fields are
// skipped. The query term is pre-classified by the search service; exactly one
// of the Query* fields is set when a term is present.
type AdminSearchFilters struct {
	QueryUUID  *uuid.UUID
	QueryEmail string
	QueryPhone string
	QuerySlug  string

	CategoryID    *int64
	SubcategoryID *int64
	Location      string

	RejectionReason string
	ReviewedBy      *uuid.UUID

	Statuses          []enums.AdStatus
	NeedsVerification *bool
	IsDeactivated     *bool
	IsArchived        *bool

	CreatedFrom *time.Time
	CreatedTo   *time.Time

	Limit  int
	Offset int
}

type BrowseFilters struct {
	CategoryID    *int64
	SubcategoryID *int64
	Division      string
	District      string
	PriceMin      *float64
	PriceMax      *float64
	Text          string

	Limit  int
	Offset int
}

func (r *AdRepo) AdminSearch(ctx context.Context, f AdminSearchFilters) ([]model.Ad, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}

	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case f.QueryUUID != nil:
		p := arg(*f.QueryUUID)
		where = append(where, fmt.Sprintf("(a.id = %s OR a.user_id = %s)", p, p))
	case f.QueryEmail != "":
		where = append(where, fmt.Sprintf("p.email ILIKE %s", arg("%"+f.QueryEmail+"%")))
	case f.QueryPhone != "":
		p := arg("%" + f.QueryPhone + "%")
		where = append(where, fmt.Sprintf("(p.phone ILIKE %s OR p.alt_phone ILIKE %s)", p, p))
	case f.QuerySlug != "":
		where = append(where, fmt.Sprintf("a.slug ILIKE %s", arg("%"+f.QuerySlug+"%")))
	}

	if f.CategoryID != nil {
		where = append(where, fmt.Sprintf("a.category_id = %s", arg(*f.CategoryID)))
	}
	if f.SubcategoryID != nil {
		where = append(where, fmt.Sprintf("a.subcategory_id = %s", arg(*f.SubcategoryID)))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		p := arg("%" + loc + "%")
		where = append(where, fmt.Sprintf("(a.division ILIKE %s OR a.district ILIKE %s OR a.area ILIKE %s)", p, p, p))
	}
	if f.RejectionReason != "" {
		where = append(where, fmt.Sprintf("%s = ANY(a.rejection_reasons)", arg(f.RejectionReason)))
	}
	if f.ReviewedBy != nil {
		where = append(where, fmt.Sprintf("a.last_reviewed_by = %s", arg(*f.ReviewedBy)))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		where = append(where, fmt.Sprintf("a.status = ANY(%s)", arg(statuses)))
	}
	if f.NeedsVerification != nil {
		where = append(where, fmt.Sprintf("a.needs_verification = %s", arg(*f.NeedsVerification)))
	}
	if f.IsDeactivated != nil {
		where = append(where, fmt.Sprintf("a.is_deactivated = %s", arg(*f.IsDeactivated)))
	}
	if f.IsArchived != nil {
		where = append(where, fmt.Sprintf("a.is_archived = %s", arg(*f.IsArchived)))
	}
	if f.CreatedFrom != nil {
		where = append(where, fmt.Sprintf("a.created_at >= %s", arg(f.CreatedFrom.UTC())))
	}
	if f.CreatedTo != nil {
		where = append(where, fmt.Sprintf("a.created_at < %s", arg(f.CreatedTo.UTC())))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `
SELECT COUNT(*)
FROM ads a
JOIN profiles p ON p.user_id = a.user_id
WHERE ` + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count admin search: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	listQuery := `
SELECT ` + prefixColumns("a", adColumns) + `
FROM ads a
JOIN profiles p ON p.user_id = a.user_id
WHERE ` + whereClause + `
ORDER BY a.created_at DESC, a.id DESC
` + fmt.Sprintf("LIMIT %s OFFSET %s", arg(limit), arg(f.Offset))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("admin search ads: %w", err)
	}
	defer rows.Close()

	ads, err := collectAds(rows)
	if err != nil {
		return nil, 0, err
	}

	return ads, total, nil
}

// Browse serves the public listing pages: approved, live ads only.
func (r *AdRepo) Browse(ctx context.Context, f BrowseFilters) ([]model.Ad, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}

	where := []string{
		"status = 'approved'",
		"is_archived = FALSE",
		"is_deactivated = FALSE",
	}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.CategoryID != nil {
		where = append(where, fmt.Sprintf("category_id = %s", arg(*f.CategoryID)))
	}
	if f.SubcategoryID != nil {
		where = append(where, fmt.Sprintf("subcategory_id = %s", arg(*f.SubcategoryID)))
	}
	if f.Division != "" {
		where = append(where, fmt.Sprintf("division = %s", arg(f.Division)))
	}
	if f.District != "" {
		where = append(where, fmt.Sprintf("district = %s", arg(f.District)))
	}
	if f.PriceMin != nil {
		where = append(where, fmt.Sprintf("price >= %s", arg(*f.PriceMin)))
	}
	if f.PriceMax != nil {
		where = append(where, fmt.Sprintf("price <= %s", arg(*f.PriceMax)))
	}
	if text := strings.TrimSpace(f.Text); text != "" {
		p := arg("%" + text + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ads WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count browse: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 24
	}
	query := `
SELECT ` + adColumns + `
FROM ads
WHERE ` + whereClause + `
ORDER BY is_featured DESC, created_at DESC, id DESC
` + fmt.Sprintf("LIMIT %s OFFSET %s", arg(limit), arg(f.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("browse ads: %w", err)
	}
	defer rows.Close()

	ads, err := collectAds(rows)
	if err != nil {
		return nil, 0, err
	}

	return ads, total, nil
}

func (r *AdRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.Ad, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 24
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+adColumns+`
FROM ads
WHERE user_id = $1 AND is_archived = FALSE
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ads by owner: %w", err)
	}
	defer rows.Close()

	return collectAds(rows)
}

func collectAds(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]model.Ad, error) {
	ads := make([]model.Ad, 0)
	for rows.Next() {
		var ad model.Ad
		if err := rows.Scan(
			&ad.ID, &ad.Slug, &ad.UserID, &ad.Title, &ad.Description, &ad.CategoryID, &ad.SubcategoryID, &ad.CustomFields,
			&ad.Price, &ad.PriceType, &ad.MRP, &ad.Discount, &ad.AdType, &ad.ProductTypes, &ad.Features,
			&ad.Division, &ad.District, &ad.Area,
			&ad.Status, &ad.NeedsVerification, &ad.FirstTimePoster, &ad.IsUnconfirmed, &ad.IsDeactivated, &ad.IsArchived, &ad.PaymentStatus,
			&ad.RejectionReason, &ad.RejectionReasons, &ad.RejectionMessage, &ad.DuplicateOfAdID,
			&ad.LastReviewedBy, &ad.LastReviewedAt,
			&ad.IsFeatured, &ad.PromotionType, &ad.PromotionExpiresAt, &ad.ExpiresAt,
			&ad.ViewsCount, &ad.CreatedAt, &ad.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ad row: %w", err)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ad rows: %w", err)
	}

	return ads, nil
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
