package perms

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
)

type fakeRoleStore struct {
	roles map[uuid.UUID][]string
	perms map[uuid.UUID][]enums.Permission
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{roles: map[uuid.UUID][]string{}, perms: map[uuid.UUID][]enums.Permission{}}
}

func (f *fakeRoleStore) RolesByUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	return f.roles[userID], nil
}

func (f *fakeRoleStore) PermissionsByUser(_ context.Context, userID uuid.UUID) ([]enums.Permission, error) {
	return f.perms[userID], nil
}

func (f *fakeRoleStore) IsAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, r := range f.roles[userID] {
		if r == RoleAdmin || r == RoleSuperadmin {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoleStore) GrantRole(_ context.Context, userID uuid.UUID, role string) error {
	f.roles[userID] = append(f.roles[userID], role)
	return nil
}

func (f *fakeRoleStore) RevokeRole(_ context.Context, userID uuid.UUID, role string) error {
	var kept []string
	for _, r := range f.roles[userID] {
		if r != role {
			kept = append(kept, r)
		}
	}
	f.roles[userID] = kept
	return nil
}

func (f *fakeRoleStore) GrantPermission(_ context.Context, userID uuid.UUID, perm enums.Permission, _ *uuid.UUID) error {
	f.perms[userID] = append(f.perms[userID], perm)
	return nil
}

func (f *fakeRoleStore) RevokePermission(_ context.Context, userID uuid.UUID, perm enums.Permission) error {
	var kept []enums.Permission
	for _, p := range f.perms[userID] {
		if p != perm {
			kept = append(kept, p)
		}
	}
	f.perms[userID] = kept
	return nil
}

func TestHas(t *testing.T) {
	store := newFakeRoleStore()
	svc := NewService(store)

	super := uuid.New()
	admin := uuid.New()
	plain := uuid.New()
	store.roles[super] = []string{RoleSuperadmin}
	store.roles[admin] = []string{RoleAdmin}
	store.perms[admin] = []enums.Permission{enums.PermReviewAds}

	tests := []struct {
		name string
		user uuid.UUID
		perm enums.Permission
		want bool
	}{
		{"superadmin passes everything", super, enums.PermManageAdmins, true},
		{"admin with grant", admin, enums.PermReviewAds, true},
		{"admin without grant", admin, enums.PermManageUsers, false},
		{"regular user", plain, enums.PermReviewAds, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Has(context.Background(), tt.user, tt.perm)
			if err != nil {
				t.Fatalf("Has: %v", err)
			}
			if got != tt.want {
				t.Errorf("Has = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrantRequiresSuperadmin(t *testing.T) {
	store := newFakeRoleStore()
	svc := NewService(store)

	super := uuid.New()
	admin := uuid.New()
	target := uuid.New()
	store.roles[super] = []string{RoleSuperadmin}
	store.roles[admin] = []string{RoleAdmin}

	if err := svc.Grant(context.Background(), admin, target, enums.PermReviewAds); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin grant: err = %v, want ErrForbidden", err)
	}
	if err := svc.Grant(context.Background(), super, target, enums.PermReviewAds); err != nil {
		t.Fatalf("superadmin grant: %v", err)
	}
	if err := svc.Grant(context.Background(), super, target, enums.Permission("bogus")); !errors.Is(err, ErrValidation) {
		t.Fatalf("bogus permission: err = %v, want ErrValidation", err)
	}
}

func TestDemoteAdminSelfGuard(t *testing.T) {
	store := newFakeRoleStore()
	svc := NewService(store)
	super := uuid.New()
	store.roles[super] = []string{RoleSuperadmin}

	if err := svc.DemoteAdmin(context.Background(), super, super); !errors.Is(err, ErrValidation) {
		t.Fatalf("self demote: err = %v, want ErrValidation", err)
	}
}

func TestRequire(t *testing.T) {
	store := newFakeRoleStore()
	svc := NewService(store)
	user := uuid.New()

	if err := svc.Require(context.Background(), user, enums.PermViewReports); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
