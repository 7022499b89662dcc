package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("user management input invalid")
	ErrNotFound   = errors.New("user not found")
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	SearchUsers(ctx context.Context, query string, blocked, deleted *bool, limit, offset int) ([]model.Profile, int, error)
	BulkSetBlocked(ctx context.Context, ids []uuid.UUID, blocked bool) (pgrepo.BulkResult, error)
	BulkSetPhoneVerified(ctx context.Context, ids []uuid.UUID, verified bool) (pgrepo.BulkResult, error)
	BulkSetVerificationStatus(ctx context.Context, ids []uuid.UUID, status enums.VerificationStatus) (pgrepo.BulkResult, error)
	BulkSetDeleted(ctx context.Context, ids []uuid.UUID, deleted bool) (pgrepo.BulkResult, error)
}

type SessionStore interface {
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type Service struct {
	profiles ProfileStore
	sessions SessionStore
	pageSize int
}

func NewService(profiles ProfileStore, sessions SessionStore, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 50
	}

	return &Service{
		profiles: profiles,
		sessions: sessions,
		pageSize: pageSize,
	}
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}

type SearchInput struct {
	Query   string
	Blocked *bool
	Deleted *bool
	Page    int
}

func (s *Service) Search(ctx context.Context, input SearchInput) ([]model.Profile, int, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}

	profiles, total, err := s.profiles.SearchUsers(ctx, input.Query, input.Blocked, input.Deleted, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}

	return profiles, total, nil
}

// UserAction names one batched mutation over a selected user set.
type UserAction string

const (
	ActionBlock          UserAction = "block"
	ActionUnblock        UserAction = "unblock"
	ActionVerifyPhone    UserAction = "verify_phone"
	ActionUnverifyPhone  UserAction = "unverify_phone"
	ActionSoftDelete     UserAction = "soft_delete"
	ActionRestore        UserAction = "restore"
	ActionSetVerifStatus UserAction = "set_verification_status"
)

type BulkInput struct {
	IDs    []uuid.UUID
	Action UserAction
	// Status applies only to ActionSetVerifStatus.
	Status enums.VerificationStatus
}

// BulkUpdate applies one action to the selection. Blocking or soft-deleting
// also revokes the users' sessions.
func (s *Service) BulkUpdate(ctx context.Context, input BulkInput) (pgrepo.BulkResult, error) {
	if len(input.IDs) == 0 {
		return pgrepo.BulkResult{}, ErrValidation
	}

	var (
		result       pgrepo.BulkResult
		err          error
		killSessions bool
	)

	switch input.Action {
	case ActionBlock:
		result, err = s.profiles.BulkSetBlocked(ctx, input.IDs, true)
		killSessions = true
	case ActionUnblock:
		result, err = s.profiles.BulkSetBlocked(ctx, input.IDs, false)
	case ActionVerifyPhone:
		result, err = s.profiles.BulkSetPhoneVerified(ctx, input.IDs, true)
	case ActionUnverifyPhone:
		result, err = s.profiles.BulkSetPhoneVerified(ctx, input.IDs, false)
	case ActionSoftDelete:
		result, err = s.profiles.BulkSetDeleted(ctx, input.IDs, true)
		killSessions = true
	case ActionRestore:
		result, err = s.profiles.BulkSetDeleted(ctx, input.IDs, false)
	case ActionSetVerifStatus:
		if !input.Status.Valid() {
			return pgrepo.BulkResult{}, ErrValidation
		}
		result, err = s.profiles.BulkSetVerificationStatus(ctx, input.IDs, input.Status)
	default:
		return pgrepo.BulkResult{}, ErrValidation
	}
	if err != nil {
		return pgrepo.BulkResult{}, fmt.Errorf("bulk %s: %w", input.Action, err)
	}

	if killSessions && s.sessions != nil {
		for _, id := range input.IDs {
			// Best effort; the profile flag already blocks new logins.
			_ = s.sessions.DeleteAllForUser(ctx, id)
		}
	}

	return result, nil
}
