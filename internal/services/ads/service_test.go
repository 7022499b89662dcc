package ads

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

type fakeAdStore struct {
	ads map[uuid.UUID]model.Ad

	created        []model.Ad
	pendingPatches map[uuid.UUID]pgrepo.AdReviewPatch
	views          map[uuid.UUID]int
	countByUser    map[uuid.UUID]int
}

func newFakeAdStore() *fakeAdStore {
	return &fakeAdStore{
		ads:            map[uuid.UUID]model.Ad{},
		pendingPatches: map[uuid.UUID]pgrepo.AdReviewPatch{},
		views:          map[uuid.UUID]int{},
		countByUser:    map[uuid.UUID]int{},
	}
}

func (f *fakeAdStore) Create(_ context.Context, ad model.Ad) error {
	f.created = append(f.created, ad)
	f.ads[ad.ID] = ad
	return nil
}

func (f *fakeAdStore) GetByID(_ context.Context, id uuid.UUID) (model.Ad, error) {
	ad, ok := f.ads[id]
	if !ok {
		return model.Ad{}, pgrepo.ErrAdNotFound
	}
	return ad, nil
}

func (f *fakeAdStore) GetBySlug(_ context.Context, slug string) (model.Ad, error) {
	for _, ad := range f.ads {
		if ad.Slug == slug {
			return ad, nil
		}
	}
	return model.Ad{}, pgrepo.ErrAdNotFound
}

func (f *fakeAdStore) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	return f.countByUser[userID], nil
}

func (f *fakeAdStore) Browse(_ context.Context, filters pgrepo.BrowseFilters) ([]model.Ad, int, error) {
	var out []model.Ad
	for _, ad := range f.ads {
		if filters.Division != "" && ad.Division != filters.Division {
			continue
		}
		out = append(out, ad)
	}
	return out, len(out), nil
}

func (f *fakeAdStore) ListByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]model.Ad, error) {
	var out []model.Ad
	for _, ad := range f.ads {
		if ad.UserID == ownerID {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (f *fakeAdStore) UpdateOwnerPending(_ context.Context, id, ownerID uuid.UUID, patch pgrepo.AdReviewPatch) error {
	ad, ok := f.ads[id]
	if !ok || ad.UserID != ownerID {
		return pgrepo.ErrAdNotFound
	}
	f.pendingPatches[id] = patch
	ad.Title = patch.Title
	f.ads[id] = ad
	return nil
}

func (f *fakeAdStore) SetSold(_ context.Context, id, ownerID uuid.UUID) error {
	ad, ok := f.ads[id]
	if !ok || ad.UserID != ownerID {
		return pgrepo.ErrAdNotFound
	}
	ad.Status = enums.AdStatusSold
	f.ads[id] = ad
	return nil
}

func (f *fakeAdStore) SetDeactivatedByOwner(_ context.Context, id, ownerID uuid.UUID, deactivated bool) error {
	ad, ok := f.ads[id]
	if !ok || ad.UserID != ownerID {
		return pgrepo.ErrAdNotFound
	}
	ad.IsDeactivated = deactivated
	f.ads[id] = ad
	return nil
}

func (f *fakeAdStore) IncrementViews(_ context.Context, id uuid.UUID) error {
	f.views[id]++
	return nil
}

type fakeEditRequestStore struct {
	created []model.AdEditRequest
	pending map[uuid.UUID]bool
}

func (f *fakeEditRequestStore) Create(_ context.Context, req model.AdEditRequest) error {
	f.created = append(f.created, req)
	return nil
}

func (f *fakeEditRequestStore) HasPendingForAd(_ context.Context, adID uuid.UUID) (bool, error) {
	return f.pending[adID], nil
}

type fakeImageStore struct {
	replaced map[uuid.UUID][]string
}

func (f *fakeImageStore) ReplaceAll(_ context.Context, adID uuid.UUID, keys []string) error {
	if f.replaced == nil {
		f.replaced = map[uuid.UUID][]string{}
	}
	f.replaced[adID] = keys
	return nil
}

func (f *fakeImageStore) ListByAd(_ context.Context, adID uuid.UUID) ([]model.AdImage, error) {
	var out []model.AdImage
	for i, key := range f.replaced[adID] {
		out = append(out, model.AdImage{AdID: adID, ObjectKey: key, SortOrder: i})
	}
	return out, nil
}

type fakeAutoModStore struct {
	settings map[string]model.AutoModerationSetting
}

func (f *fakeAutoModStore) Get(_ context.Context, key string) (model.AutoModerationSetting, error) {
	return f.settings[key], nil
}

type fakeLimiter struct {
	allowed bool
	calls   int
}

func (f *fakeLimiter) AllowPost(_ context.Context, _ uuid.UUID) (int64, bool, error) {
	f.calls++
	return 1, f.allowed, nil
}

func newTestService(ads *fakeAdStore, requests *fakeEditRequestStore) (*Service, *fakeImageStore, *fakeAutoModStore, *fakeLimiter) {
	images := &fakeImageStore{}
	automod := &fakeAutoModStore{settings: map[string]model.AutoModerationSetting{}}
	limiter := &fakeLimiter{allowed: true}
	svc := NewService(ads, requests, images, automod, limiter, 24, 30)
	return svc, images, automod, limiter
}

func TestSubmitFirstTimePoster(t *testing.T) {
	store := newFakeAdStore()
	svc, images, _, _ := newTestService(store, &fakeEditRequestStore{})
	userID := uuid.New()

	ad, err := svc.Submit(context.Background(), userID, SubmitInput{
		Title:       "iPhone 13 128GB",
		Description: "Lightly used",
		ImageKeys:   []string{"k1", "k2"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !ad.FirstTimePoster {
		t.Error("first ad should be flagged first_time_poster")
	}
	if ad.Status != enums.AdStatusPending {
		t.Errorf("status = %q, want pending", ad.Status)
	}
	if ad.ExpiresAt == nil {
		t.Error("expiry should default for ads without the no-expiration feature")
	}
	if !strings.HasPrefix(ad.Slug, "iphone-13-128gb-") {
		t.Errorf("slug = %q", ad.Slug)
	}
	if got := images.replaced[ad.ID]; len(got) != 2 {
		t.Errorf("attached images = %v", got)
	}

	store.countByUser[userID] = 1
	second, err := svc.Submit(context.Background(), userID, SubmitInput{Title: "Desk", Description: "Oak"})
	if err != nil {
		t.Fatalf("Submit second: %v", err)
	}
	if second.FirstTimePoster {
		t.Error("second ad should not be first_time_poster")
	}
}

func TestSubmitNoExpirationFeature(t *testing.T) {
	store := newFakeAdStore()
	svc, _, _, _ := newTestService(store, &fakeEditRequestStore{})

	ad, err := svc.Submit(context.Background(), uuid.New(), SubmitInput{
		Title:       "Shop space",
		Description: "Long term",
		Features:    []string{enums.FeatureNoExpiration},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ad.ExpiresAt != nil {
		t.Errorf("ExpiresAt = %v, want nil", ad.ExpiresAt)
	}
}

func TestSubmitTrustedSellerAutoApprove(t *testing.T) {
	store := newFakeAdStore()
	svc, _, automod, _ := newTestService(store, &fakeEditRequestStore{})
	userID := uuid.New()
	store.countByUser[userID] = 5
	automod.settings[trustedSellerKey] = model.AutoModerationSetting{
		Key: trustedSellerKey, Enabled: true, Threshold: 3,
	}

	ad, err := svc.Submit(context.Background(), userID, SubmitInput{Title: "TV", Description: "LED"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ad.Status != enums.AdStatusApproved || !ad.NeedsVerification {
		t.Errorf("trusted seller ad: status=%q needsVerification=%v", ad.Status, ad.NeedsVerification)
	}

	// Below threshold stays pending even with the switch on.
	other := uuid.New()
	store.countByUser[other] = 1
	ad2, err := svc.Submit(context.Background(), other, SubmitInput{Title: "TV", Description: "LED"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ad2.Status != enums.AdStatusPending {
		t.Errorf("status = %q, want pending", ad2.Status)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	store := newFakeAdStore()
	svc, _, _, limiter := newTestService(store, &fakeEditRequestStore{})
	limiter.allowed = false

	_, err := svc.Submit(context.Background(), uuid.New(), SubmitInput{Title: "x", Description: "y"})
	rl, ok := IsRateLimited(err)
	if !ok {
		t.Fatalf("err = %v, want RateLimitedError", err)
	}
	if rl.RetryAfter() <= 0 {
		t.Fatalf("retry after = %d, want positive", rl.RetryAfter())
	}
	if len(store.created) != 0 {
		t.Error("no ad should be created when rate limited")
	}
}

func TestSubmitValidation(t *testing.T) {
	store := newFakeAdStore()
	svc, _, _, _ := newTestService(store, &fakeEditRequestStore{})

	_, err := svc.Submit(context.Background(), uuid.New(), SubmitInput{Title: "  ", Description: "y"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("blank title: err = %v, want ErrValidation", err)
	}
}

func TestDetailIncrementsViews(t *testing.T) {
	store := newFakeAdStore()
	svc, _, _, _ := newTestService(store, &fakeEditRequestStore{})

	id := uuid.New()
	store.ads[id] = model.Ad{ID: id, Slug: "old-bike-" + id.String()[:8], Status: enums.AdStatusApproved}

	ad, _, err := svc.Detail(context.Background(), "old-bike-"+id.String()[:8])
	if err != nil {
		t.Fatalf("Detail by slug: %v", err)
	}
	if ad.ID != id {
		t.Fatalf("resolved wrong ad")
	}

	if _, _, err := svc.Detail(context.Background(), id.String()); err != nil {
		t.Fatalf("Detail by id: %v", err)
	}
	if store.views[id] != 2 {
		t.Errorf("views = %d, want 2", store.views[id])
	}
}

func TestEditPendingUpdatesInPlace(t *testing.T) {
	store := newFakeAdStore()
	requests := &fakeEditRequestStore{pending: map[uuid.UUID]bool{}}
	svc, _, _, _ := newTestService(store, requests)

	owner := uuid.New()
	id := uuid.New()
	store.ads[id] = model.Ad{ID: id, UserID: owner, Status: enums.AdStatusPending, Title: "Old"}

	res, err := svc.Edit(context.Background(), id, owner, EditInput{Title: "New title", Description: "d"})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !res.Direct {
		t.Error("pending ad edit should be applied directly")
	}
	if len(requests.created) != 0 {
		t.Error("pending ad edit must not create an edit request")
	}
	if store.pendingPatches[id].Title != "New title" {
		t.Errorf("patch title = %q", store.pendingPatches[id].Title)
	}
}

func TestEditApprovedCreatesRequest(t *testing.T) {
	store := newFakeAdStore()
	requests := &fakeEditRequestStore{pending: map[uuid.UUID]bool{}}
	svc, _, _, _ := newTestService(store, requests)

	owner := uuid.New()
	id := uuid.New()
	store.ads[id] = model.Ad{ID: id, UserID: owner, Status: enums.AdStatusApproved, Title: "Old title"}

	res, err := svc.Edit(context.Background(), id, owner, EditInput{Title: "New title", Description: "d"})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if res.Direct {
		t.Error("approved ad edit should go through a request")
	}
	if len(requests.created) != 1 {
		t.Fatalf("requests created = %d, want 1", len(requests.created))
	}
	req := requests.created[0]
	if req.AdID != id || req.Status != enums.EditRequestPending {
		t.Errorf("request = %+v", req)
	}
	if req.OldValues["title"] != "Old title" || req.NewValues["title"] != "New title" {
		t.Errorf("snapshots: old=%v new=%v", req.OldValues["title"], req.NewValues["title"])
	}

	// Second edit while one is pending is refused.
	requests.pending[id] = true
	if _, err := svc.Edit(context.Background(), id, owner, EditInput{Title: "Another"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("second edit err = %v, want ErrValidation", err)
	}
}

func TestEditRejectsNonOwner(t *testing.T) {
	store := newFakeAdStore()
	svc, _, _, _ := newTestService(store, &fakeEditRequestStore{})

	id := uuid.New()
	store.ads[id] = model.Ad{ID: id, UserID: uuid.New(), Status: enums.AdStatusPending}

	if _, err := svc.Edit(context.Background(), id, uuid.New(), EditInput{Title: "t"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestMarkSoldAndDeactivate(t *testing.T) {
	store := newFakeAdStore()
	svc, _, _, _ := newTestService(store, &fakeEditRequestStore{})

	owner := uuid.New()
	id := uuid.New()
	store.ads[id] = model.Ad{ID: id, UserID: owner, Status: enums.AdStatusApproved}

	if err := svc.MarkSold(context.Background(), id, owner); err != nil {
		t.Fatalf("MarkSold: %v", err)
	}
	if store.ads[id].Status != enums.AdStatusSold {
		t.Errorf("status = %q, want sold", store.ads[id].Status)
	}

	if err := svc.SetDeactivated(context.Background(), id, owner, true); err != nil {
		t.Fatalf("SetDeactivated: %v", err)
	}
	if !store.ads[id].IsDeactivated {
		t.Error("ad should be deactivated")
	}

	if err := svc.MarkSold(context.Background(), uuid.New(), owner); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing ad err = %v, want ErrNotFound", err)
	}
}

func TestGenerateSlug(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")

	tests := []struct {
		title string
		want  string
	}{
		{"iPhone 13 128GB", "iphone-13-128gb-a1b2c3d4"},
		{"  Déjà -- vu!  ", "d-j-vu-a1b2c3d4"},
		{"!!!", "a1b2c3d4"},
	}
	for _, tt := range tests {
		if got := GenerateSlug(tt.title, id); got != tt.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}

	long := GenerateSlug(strings.Repeat("very long title ", 20), id)
	if len(long) > maxSlugTitleLen+1+8+2 {
		t.Errorf("slug too long: %d chars", len(long))
	}
}
