package profiles

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("profile input invalid")
	ErrNotFound   = errors.New("profile not found")
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-]{5,17}$`)

var sellerTypes = map[string]struct{}{
	"individual": {},
	"business":   {},
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	UpdateReview(ctx context.Context, userID uuid.UUID, patch pgrepo.ProfileReviewPatch) error
	SetAvatarKey(ctx context.Context, userID uuid.UUID, key string) error
}

type AvatarSigner interface {
	SignAvatar(ctx context.Context, objectKey string) (string, error)
}

type Service struct {
	store  ProfileStore
	signer AvatarSigner
}

func NewService(store ProfileStore, signer AvatarSigner) *Service {
	return &Service{store: store, signer: signer}
}

// Me returns the caller's profile with a signed avatar URL when one is set.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (model.Profile, string, error) {
	profile, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, "", ErrNotFound
		}
		return model.Profile{}, "", fmt.Errorf("load profile: %w", err)
	}

	avatarURL := ""
	if profile.AvatarKey != "" && s.signer != nil {
		if url, signErr := s.signer.SignAvatar(ctx, profile.AvatarKey); signErr == nil {
			avatarURL = url
		}
	}

	return profile, avatarURL, nil
}

type UpdateInput struct {
	DisplayName string
	Phone       string
	AltPhone    string
	SellerType  string
	ShowPhone   bool
}

// Update applies the caller's own edits. Changing the phone number clears
// the verified flag until the number is confirmed again.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (model.Profile, error) {
	name := strings.TrimSpace(input.DisplayName)
	if name == "" || len(name) > 100 {
		return model.Profile{}, ErrValidation
	}
	phone := strings.TrimSpace(input.Phone)
	if phone != "" && !phonePattern.MatchString(phone) {
		return model.Profile{}, ErrValidation
	}
	altPhone := strings.TrimSpace(input.AltPhone)
	if altPhone != "" && !phonePattern.MatchString(altPhone) {
		return model.Profile{}, ErrValidation
	}
	if input.SellerType != "" {
		if _, ok := sellerTypes[input.SellerType]; !ok {
			return model.Profile{}, ErrValidation
		}
	}

	current, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("load profile: %w", err)
	}

	phoneVerified := current.PhoneVerified && phone == current.Phone
	patch := pgrepo.ProfileReviewPatch{
		DisplayName:   name,
		Email:         current.Email,
		Phone:         phone,
		AltPhone:      altPhone,
		SellerType:    input.SellerType,
		ShowPhone:     input.ShowPhone,
		PhoneVerified: phoneVerified,
	}
	if err := s.store.UpdateReview(ctx, userID, patch); err != nil {
		return model.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	current.DisplayName = name
	current.Phone = phone
	current.AltPhone = altPhone
	current.SellerType = input.SellerType
	current.ShowPhone = input.ShowPhone
	current.PhoneVerified = phoneVerified
	return current, nil
}

func (s *Service) SetAvatar(ctx context.Context, userID uuid.UUID, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" {
		return ErrValidation
	}
	if err := s.store.SetAvatarKey(ctx, userID, objectKey); err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set avatar: %w", err)
	}
	return nil
}
