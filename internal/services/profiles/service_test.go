package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

type fakeProfileStore struct {
	profiles map[uuid.UUID]model.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[uuid.UUID]model.Profile{}}
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return model.Profile{}, pgrepo.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileStore) UpdateReview(_ context.Context, userID uuid.UUID, patch pgrepo.ProfileReviewPatch) error {
	p, ok := f.profiles[userID]
	if !ok {
		return pgrepo.ErrProfileNotFound
	}
	p.DisplayName = patch.DisplayName
	p.Email = patch.Email
	p.Phone = patch.Phone
	p.AltPhone = patch.AltPhone
	p.SellerType = patch.SellerType
	p.ShowPhone = patch.ShowPhone
	p.PhoneVerified = patch.PhoneVerified
	f.profiles[userID] = p
	return nil
}

func (f *fakeProfileStore) SetAvatarKey(_ context.Context, userID uuid.UUID, key string) error {
	p, ok := f.profiles[userID]
	if !ok {
		return pgrepo.ErrProfileNotFound
	}
	p.AvatarKey = key
	f.profiles[userID] = p
	return nil
}

type fakeSigner struct{}

func (fakeSigner) SignAvatar(_ context.Context, objectKey string) (string, error) {
	return "https://cdn.example/" + objectKey, nil
}

func TestUpdateClearsPhoneVerifiedOnChange(t *testing.T) {
	store := newFakeProfileStore()
	userID := uuid.New()
	store.profiles[userID] = model.Profile{
		UserID:        userID,
		DisplayName:   "Rahim",
		Email:         "rahim@example.com",
		Phone:         "+8801712345678",
		PhoneVerified: true,
	}
	svc := NewService(store, nil)

	// Same phone keeps the verified flag.
	p, err := svc.Update(context.Background(), userID, UpdateInput{DisplayName: "Rahim", Phone: "+8801712345678"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !p.PhoneVerified {
		t.Error("unchanged phone should stay verified")
	}

	// New phone resets it.
	p, err = svc.Update(context.Background(), userID, UpdateInput{DisplayName: "Rahim", Phone: "+8801812345678"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.PhoneVerified {
		t.Error("changed phone must clear the verified flag")
	}
	if store.profiles[userID].Email != "rahim@example.com" {
		t.Error("self update must not touch the email")
	}
}

func TestUpdateValidation(t *testing.T) {
	store := newFakeProfileStore()
	userID := uuid.New()
	store.profiles[userID] = model.Profile{UserID: userID, DisplayName: "x"}
	svc := NewService(store, nil)

	cases := []UpdateInput{
		{DisplayName: "  "},
		{DisplayName: "ok", Phone: "abc"},
		{DisplayName: "ok", AltPhone: "12"},
		{DisplayName: "ok", SellerType: "alien"},
	}
	for i, input := range cases {
		if _, err := svc.Update(context.Background(), userID, input); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: err = %v, want ErrValidation", i, err)
		}
	}
}

func TestMeSignsAvatar(t *testing.T) {
	store := newFakeProfileStore()
	userID := uuid.New()
	store.profiles[userID] = model.Profile{UserID: userID, DisplayName: "x", AvatarKey: userID.String() + "/1-avatar"}
	svc := NewService(store, fakeSigner{})

	_, url, err := svc.Me(context.Background(), userID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if url == "" {
		t.Error("expected signed avatar url")
	}

	if _, _, err := svc.Me(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing profile: err = %v, want ErrNotFound", err)
	}
}
