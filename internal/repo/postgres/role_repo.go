package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/enums"
)

type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

func (r *RoleRepo) RolesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role
`, userID)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	roles := make([]string, 0)
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}

	return roles, nil
}

func (r *RoleRepo) PermissionsByUser(ctx context.Context, userID uuid.UUID) ([]enums.Permission, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT permission FROM user_permissions WHERE user_id = $1 ORDER BY permission
`, userID)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}
	defer rows.Close()

	perms := make([]enums.Permission, 0)
	for rows.Next() {
		var perm enums.Permission
		if err := rows.Scan(&perm); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, perm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate permission rows: %w", err)
	}

	return perms, nil
}

func (r *RoleRepo) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var isAdmin bool
	if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role IN ('admin', 'superadmin'))
`, userID).Scan(&isAdmin); err != nil {
		return false, fmt.Errorf("check admin role: %w", err)
	}

	return isAdmin, nil
}

func (r *RoleRepo) GrantRole(ctx context.Context, userID uuid.UUID, role string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO user_roles (user_id, role, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id, role) DO NOTHING
`, userID, role); err != nil {
		return fmt.Errorf("grant role: %w", err)
	}

	return nil
}

func (r *RoleRepo) RevokeRole(ctx context.Context, userID uuid.UUID, role string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
DELETE FROM user_roles WHERE user_id = $1 AND role = $2
`, userID, role); err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}

	return nil
}

func (r *RoleRepo) GrantPermission(ctx context.Context, userID uuid.UUID, perm enums.Permission, grantedBy *uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO user_permissions (user_id, permission, granted_by, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (user_id, permission) DO NOTHING
`, userID, perm, grantedBy); err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}

	return nil
}

func (r *RoleRepo) RevokePermission(ctx context.Context, userID uuid.UUID, perm enums.Permission) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
DELETE FROM user_permissions WHERE user_id = $1 AND permission = $2
`, userID, perm); err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}

	return nil
}
