package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `
user_id, display_name, email, phone, alt_phone, seller_type, show_phone,
phone_verified, verification_status, avatar_key, is_blocked, is_deleted,
created_at, updated_at`

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// ProfileReviewPatch mirrors the seller fields editable from the moderation
// form.
type ProfileReviewPatch struct {
	DisplayName   string
	Email         string
	Phone         string
	AltPhone      string
	SellerType    string
	ShowPhone     bool
	PhoneVerified bool
}

func (r *ProfileRepo) Create(ctx context.Context, profile model.Profile, passwordHash string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO profiles (
	user_id, display_name, email, phone, alt_phone, seller_type, show_phone,
	phone_verified, verification_status, password_hash, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
`,
		profile.UserID, profile.DisplayName, strings.ToLower(strings.TrimSpace(profile.Email)),
		profile.Phone, profile.AltPhone, profile.SellerType, profile.ShowPhone,
		profile.PhoneVerified, profile.VerificationStatus, passwordHash,
	); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	return r.queryOne(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE user_id = $1
LIMIT 1
`, userID)
}

func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (model.Profile, error) {
	return r.queryOne(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE email = $1 AND is_deleted = FALSE
LIMIT 1
`, strings.ToLower(strings.TrimSpace(email)))
}

// CredentialsByEmail returns the login row regardless of flags so the auth
// service can distinguish blocked from unknown.
func (r *ProfileRepo) CredentialsByEmail(ctx context.Context, email string) (uuid.UUID, string, bool, error) {
	if r.pool == nil {
		return uuid.Nil, "", false, fmt.Errorf("postgres pool is nil")
	}

	var (
		userID  uuid.UUID
		hash    string
		blocked bool
	)
	err := r.pool.QueryRow(ctx, `
SELECT user_id, password_hash, is_blocked
FROM profiles
WHERE email = $1 AND is_deleted = FALSE
LIMIT 1
`, strings.ToLower(strings.TrimSpace(email))).Scan(&userID, &hash, &blocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, "", false, ErrProfileNotFound
		}
		return uuid.Nil, "", false, fmt.Errorf("query credentials: %w", err)
	}

	return userID, hash, blocked, nil
}

func (r *ProfileRepo) UpdateReview(ctx context.Context, userID uuid.UUID, patch ProfileReviewPatch) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET
	display_name = $2,
	email = $3,
	phone = $4,
	alt_phone = $5,
	seller_type = $6,
	show_phone = $7,
	phone_verified = $8,
	updated_at = NOW()
WHERE user_id = $1
`,
		userID,
		patch.DisplayName, strings.ToLower(strings.TrimSpace(patch.Email)),
		patch.Phone, patch.AltPhone, patch.SellerType, patch.ShowPhone, patch.PhoneVerified,
	)
	if err != nil {
		return fmt.Errorf("update profile review fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepo) SetAvatarKey(ctx context.Context, userID uuid.UUID, key string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE profiles SET avatar_key = $2, updated_at = NOW() WHERE user_id = $1
`, userID, key); err != nil {
		return fmt.Errorf("set avatar key: %w", err)
	}

	return nil
}

func (r *ProfileRepo) BulkSetBlocked(ctx context.Context, ids []uuid.UUID, blocked bool) (BulkResult, error) {
	return r.bulkExec(ctx, `
UPDATE profiles SET is_blocked = $2, updated_at = NOW() WHERE user_id = ANY($1)
`, ids, blocked)
}

func (r *ProfileRepo) BulkSetPhoneVerified(ctx context.Context, ids []uuid.UUID, verified bool) (BulkResult, error) {
	return r.bulkExec(ctx, `
UPDATE profiles SET phone_verified = $2, updated_at = NOW() WHERE user_id = ANY($1)
`, ids, verified)
}

func (r *ProfileRepo) BulkSetVerificationStatus(ctx context.Context, ids []uuid.UUID, status enums.VerificationStatus) (BulkResult, error) {
	return r.bulkExec(ctx, `
UPDATE profiles SET verification_status = $2, updated_at = NOW() WHERE user_id = ANY($1)
`, ids, status)
}

func (r *ProfileRepo) BulkSetDeleted(ctx context.Context, ids []uuid.UUID, deleted bool) (BulkResult, error) {
	return r.bulkExec(ctx, `
UPDATE profiles SET is_deleted = $2, updated_at = NOW() WHERE user_id = ANY($1)
`, ids, deleted)
}

func (r *ProfileRepo) bulkExec(ctx context.Context, query string, ids []uuid.UUID, args ...any) (BulkResult, error) {
	if r.pool == nil {
		return BulkResult{}, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return BulkResult{}, nil
	}

	tag, err := r.pool.Exec(ctx, query, append([]any{ids}, args...)...)
	if err != nil {
		return BulkResult{}, fmt.Errorf("bulk update profiles: %w", err)
	}

	return BulkResult{Matched: tag.RowsAffected()}, nil
}

// SearchUsers serves the admin user-management list.
func (r *ProfileRepo) SearchUsers(ctx context.Context, query string, blocked, deleted *bool, limit, offset int) ([]model.Profile, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}

	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(query); q != "" {
		p := arg("%" + q + "%")
		where = append(where, fmt.Sprintf("(display_name ILIKE %s OR email ILIKE %s OR phone ILIKE %s)", p, p, p))
	}
	if blocked != nil {
		where = append(where, fmt.Sprintf("is_blocked = %s", arg(*blocked)))
	}
	if deleted != nil {
		where = append(where, fmt.Sprintf("is_deleted = %s", arg(*deleted)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE `+whereClause+`
ORDER BY created_at DESC
`+fmt.Sprintf("LIMIT %s OFFSET %s", arg(limit), arg(offset)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0)
	for rows.Next() {
		profile, scanErr := scanProfile(rows)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate user rows: %w", err)
	}

	return profiles, total, nil
}

func (r *ProfileRepo) queryOne(ctx context.Context, query string, args ...any) (model.Profile, error) {
	if r.pool == nil {
		return model.Profile{}, fmt.Errorf("postgres pool is nil")
	}

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, ErrProfileNotFound
		}
		return model.Profile{}, fmt.Errorf("query profile: %w", err)
	}

	return profile, nil
}

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.UserID, &p.DisplayName, &p.Email, &p.Phone, &p.AltPhone, &p.SellerType, &p.ShowPhone,
		&p.PhoneVerified, &p.VerificationStatus, &p.AvatarKey, &p.IsBlocked, &p.IsDeleted,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
