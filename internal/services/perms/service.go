package perms

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
)

var (
	ErrValidation = errors.New("permission input invalid")
	ErrForbidden  = errors.New("permission denied")
)

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type RoleStore interface {
	RolesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	PermissionsByUser(ctx context.Context, userID uuid.UUID) ([]enums.Permission, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GrantRole(ctx context.Context, userID uuid.UUID, role string) error
	RevokeRole(ctx context.Context, userID uuid.UUID, role string) error
	GrantPermission(ctx context.Context, userID uuid.UUID, perm enums.Permission, grantedBy *uuid.UUID) error
	RevokePermission(ctx context.Context, userID uuid.UUID, perm enums.Permission) error
}

type Service struct {
	roles RoleStore
}

func NewService(roles RoleStore) *Service {
	return &Service{roles: roles}
}

// Has reports whether the user may perform the capability. Superadmins pass
// every check; regular admins need the explicit grant.
func (s *Service) Has(ctx context.Context, userID uuid.UUID, perm enums.Permission) (bool, error) {
	roles, err := s.roles.RolesByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load roles: %w", err)
	}
	if containsRole(roles, RoleSuperadmin) {
		return true, nil
	}
	if !containsRole(roles, RoleAdmin) {
		return false, nil
	}

	granted, err := s.roles.PermissionsByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load permissions: %w", err)
	}
	for _, p := range granted {
		if p == perm {
			return true, nil
		}
	}
	return false, nil
}

// Require is Has with a forbidden error instead of a boolean.
func (s *Service) Require(ctx context.Context, userID uuid.UUID, perm enums.Permission) error {
	ok, err := s.Has(ctx, userID, perm)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (s *Service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.roles.IsAdmin(ctx, userID)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]string, []enums.Permission, error) {
	roles, err := s.roles.RolesByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load roles: %w", err)
	}
	granted, err := s.roles.PermissionsByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load permissions: %w", err)
	}
	return roles, granted, nil
}

// Grant gives a user a permission. Only superadmins may manage admins.
func (s *Service) Grant(ctx context.Context, actorID, userID uuid.UUID, perm enums.Permission) error {
	if !validPermission(perm) {
		return ErrValidation
	}
	if err := s.requireSuperadmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.roles.GrantPermission(ctx, userID, perm, &actorID); err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}
	return nil
}

func (s *Service) Revoke(ctx context.Context, actorID, userID uuid.UUID, perm enums.Permission) error {
	if !validPermission(perm) {
		return ErrValidation
	}
	if err := s.requireSuperadmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.roles.RevokePermission(ctx, userID, perm); err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	return nil
}

func (s *Service) PromoteAdmin(ctx context.Context, actorID, userID uuid.UUID) error {
	if err := s.requireSuperadmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.roles.GrantRole(ctx, userID, RoleAdmin); err != nil {
		return fmt.Errorf("grant admin role: %w", err)
	}
	return nil
}

func (s *Service) DemoteAdmin(ctx context.Context, actorID, userID uuid.UUID) error {
	if err := s.requireSuperadmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == userID {
		return ErrValidation
	}
	if err := s.roles.RevokeRole(ctx, userID, RoleAdmin); err != nil {
		return fmt.Errorf("revoke admin role: %w", err)
	}
	return nil
}

func (s *Service) requireSuperadmin(ctx context.Context, actorID uuid.UUID) error {
	roles, err := s.roles.RolesByUser(ctx, actorID)
	if err != nil {
		return fmt.Errorf("load actor roles: %w", err)
	}
	if !containsRole(roles, RoleSuperadmin) {
		return ErrForbidden
	}
	return nil
}

func containsRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func validPermission(perm enums.Permission) bool {
	switch perm {
	case enums.PermReviewAds, enums.PermManageUsers, enums.PermManageCategories,
		enums.PermManageEmails, enums.PermViewReports, enums.PermManageAdmins:
		return true
	}
	return false
}
