package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

type rejectCall struct {
	adID        uuid.UUID
	reasons     []string
	duplicateOf *uuid.UUID
}

type fakeAdStore struct {
	ads map[uuid.UUID]model.Ad

	updates  map[uuid.UUID]pgrepo.AdReviewPatch
	approved []uuid.UUID
	rejects  []rejectCall
}

func newFakeAdStore(ads ...model.Ad) *fakeAdStore {
	store := &fakeAdStore{
		ads:     make(map[uuid.UUID]model.Ad, len(ads)),
		updates: make(map[uuid.UUID]pgrepo.AdReviewPatch),
	}
	for _, ad := range ads {
		store.ads[ad.ID] = ad
	}
	return store
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

func (f *fakeAdStore) NextPending(_ context.Context, firstTimePoster bool) (model.Ad, error) {
	return f.oldest(func(ad model.Ad) bool {
		return ad.Status == enums.AdStatusPending && ad.FirstTimePoster == firstTimePoster
	})
}

func (f *fakeAdStore) NextNeedsVerification(_ context.Context) (model.Ad, error) {
	return f.oldest(func(ad model.Ad) bool {
		return ad.Status == enums.AdStatusApproved && ad.NeedsVerification
	})
}

func (f *fakeAdStore) oldest(match func(model.Ad) bool) (model.Ad, error) {
	var (
		best  model.Ad
		found bool
	)
	for _, ad := range f.ads {
		if !match(ad) {
			continue
		}
		if !found || ad.CreatedAt.Before(best.CreatedAt) {
			best = ad
			found = true
		}
	}
	if !found {
		return model.Ad{}, pgrepo.ErrAdNotFound
	}
	return best, nil
}

func (f *fakeAdStore) UpdateReview(_ context.Context, id uuid.UUID, patch pgrepo.AdReviewPatch) error {
	ad, ok := f.ads[id]
	if !ok {
		return pgrepo.ErrAdNotFound
	}
	ad.Title = patch.Title
	ad.Description = patch.Description
	ad.ProductTypes = patch.ProductTypes
	ad.Features = patch.Features
	ad.IsFeatured = patch.IsFeatured
	ad.PromotionType = patch.PromotionType
	ad.ExpiresAt = patch.ExpiresAt
	f.ads[id] = ad
	f.updates[id] = patch
	return nil
}

func (f *fakeAdStore) SetApproved(_ context.Context, id, reviewerID uuid.UUID, at time.Time) error {
	ad, ok := f.ads[id]
	if !ok {
		return pgrepo.ErrAdNotFound
	}
	ad.Status = enums.AdStatusApproved
	ad.NeedsVerification = false
	ad.LastReviewedBy = &reviewerID
	ad.LastReviewedAt = &at
	f.ads[id] = ad
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeAdStore) SetRejected(_ context.Context, id, reviewerID uuid.UUID, reasons []string, message string, duplicateOf *uuid.UUID, at time.Time) error {
	ad, ok := f.ads[id]
	if !ok {
		return pgrepo.ErrAdNotFound
	}
	ad.Status = enums.AdStatusRejected
	ad.RejectionReasons = reasons
	ad.RejectionMessage = message
	ad.DuplicateOfAdID = duplicateOf
	ad.LastReviewedBy = &reviewerID
	ad.LastReviewedAt = &at
	f.ads[id] = ad
	f.rejects = append(f.rejects, rejectCall{adID: id, reasons: reasons, duplicateOf: duplicateOf})
	return nil
}

type fakeProfileStore struct {
	profiles map[uuid.UUID]model.Profile
	patches  []pgrepo.ProfileReviewPatch
}

func newFakeProfileStore(profiles ...model.Profile) *fakeProfileStore {
	store := &fakeProfileStore{profiles: make(map[uuid.UUID]model.Profile, len(profiles))}
	for _, p := range profiles {
		store.profiles[p.UserID] = p
	}
	return store
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return model.Profile{}, pgrepo.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileStore) UpdateReview(_ context.Context, userID uuid.UUID, patch pgrepo.ProfileReviewPatch) error {
	if _, ok := f.profiles[userID]; !ok {
		return pgrepo.ErrProfileNotFound
	}
	f.patches = append(f.patches, patch)
	return nil
}

type fakeEditRequestStore struct {
	requests map[uuid.UUID]model.AdEditRequest
	approved []uuid.UUID
	rejected []uuid.UUID
}

func newFakeEditRequestStore(requests ...model.AdEditRequest) *fakeEditRequestStore {
	store := &fakeEditRequestStore{requests: make(map[uuid.UUID]model.AdEditRequest, len(requests))}
	for _, req := range requests {
		store.requests[req.ID] = req
	}
	return store
}

func (f *fakeEditRequestStore) NextPending(_ context.Context) (model.AdEditRequest, error) {
	var (
		best  model.AdEditRequest
		found bool
	)
	for _, req := range f.requests {
		if req.Status != enums.EditRequestPending {
			continue
		}
		if !found || req.CreatedAt.Before(best.CreatedAt) {
			best = req
			found = true
		}
	}
	if !found {
		return model.AdEditRequest{}, pgrepo.ErrEditRequestNotFound
	}
	return best, nil
}

func (f *fakeEditRequestStore) GetByID(_ context.Context, id uuid.UUID) (model.AdEditRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return model.AdEditRequest{}, pgrepo.ErrEditRequestNotFound
	}
	return req, nil
}

func (f *fakeEditRequestStore) LatestPendingByAd(_ context.Context, adID uuid.UUID) (model.AdEditRequest, error) {
	var (
		best  model.AdEditRequest
		found bool
	)
	for _, req := range f.requests {
		if req.AdID != adID || req.Status != enums.EditRequestPending {
			continue
		}
		if !found || req.CreatedAt.After(best.CreatedAt) {
			best = req
			found = true
		}
	}
	if !found {
		return model.AdEditRequest{}, pgrepo.ErrEditRequestNotFound
	}
	return best, nil
}

func (f *fakeEditRequestStore) SetApproved(_ context.Context, id, reviewerID uuid.UUID, at time.Time) error {
	req, ok := f.requests[id]
	if !ok {
		return pgrepo.ErrEditRequestNotFound
	}
	req.Status = enums.EditRequestApproved
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &at
	f.requests[id] = req
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeEditRequestStore) SetRejected(_ context.Context, id, reviewerID uuid.UUID, message string, at time.Time) error {
	req, ok := f.requests[id]
	if !ok {
		return pgrepo.ErrEditRequestNotFound
	}
	req.Status = enums.EditRequestRejected
	req.ReviewerMessage = message
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &at
	f.requests[id] = req
	f.rejected = append(f.rejected, id)
	return nil
}

type fakeImageStore struct{}

func (fakeImageStore) ListByAd(_ context.Context, _ uuid.UUID) ([]model.AdImage, error) {
	return nil, nil
}

type fakeAuditStore struct {
	entries []model.AdAuditLog
}

func (f *fakeAuditStore) Create(_ context.Context, entry model.AdAuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func testAd(userID uuid.UUID, createdAt time.Time, mutate func(*model.Ad)) model.Ad {
	ad := model.Ad{
		ID:        uuid.New(),
		Slug:      "test-ad-" + uuid.NewString()[:8],
		UserID:    userID,
		Title:     "Test ad",
		Status:    enums.AdStatusPending,
		CreatedAt: createdAt,
	}
	if mutate != nil {
		mutate(&ad)
	}
	return ad
}

func newTestService(ads *fakeAdStore, profiles *fakeProfileStore, requests *fakeEditRequestStore) (*Service, *fakeAuditStore) {
	audits := &fakeAuditStore{}
	svc := NewService(ads, profiles, requests, fakeImageStore{}, audits, nil, 30)
	return svc, audits
}

func TestNextQueueItemPredicates(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	generalOld := testAd(userID, base, nil)
	generalNew := testAd(userID, base.Add(time.Hour), nil)
	member := testAd(userID, base.Add(-time.Hour), func(ad *model.Ad) { ad.FirstTimePoster = true })
	verification := testAd(userID, base.Add(-2*time.Hour), func(ad *model.Ad) {
		ad.Status = enums.AdStatusApproved
		ad.NeedsVerification = true
	})

	ads := newFakeAdStore(generalOld, generalNew, member, verification)
	profiles := newFakeProfileStore(model.Profile{UserID: userID})
	request := model.AdEditRequest{
		ID:        uuid.New(),
		AdID:      verification.ID,
		UserID:    userID,
		Status:    enums.EditRequestPending,
		OldValues: map[string]any{"title": "old"},
		NewValues: map[string]any{"title": "new"},
		CreatedAt: base,
	}
	requests := newFakeEditRequestStore(request)
	svc, _ := newTestService(ads, profiles, requests)

	tests := []struct {
		queue  enums.ModerationQueue
		wantAd uuid.UUID
	}{
		{enums.QueueGeneral, generalOld.ID},
		{enums.QueueMember, member.ID},
		{enums.QueueVerification, verification.ID},
		{enums.QueueEdited, verification.ID},
	}
	for _, tc := range tests {
		item, err := svc.NextQueueItem(context.Background(), tc.queue)
		if err != nil {
			t.Fatalf("queue %s: unexpected error: %v", tc.queue, err)
		}
		if item.Ad.ID != tc.wantAd {
			t.Fatalf("queue %s: got ad %s, want %s", tc.queue, item.Ad.ID, tc.wantAd)
		}
	}

	item, err := svc.NextQueueItem(context.Background(), enums.QueueEdited)
	if err != nil {
		t.Fatalf("edited queue: %v", err)
	}
	if item.EditRequest == nil || item.EditRequest.ID != request.ID {
		t.Fatalf("edited queue did not carry the pending request")
	}
	if len(item.Diff) != 1 || item.Diff[0].Key != "title" {
		t.Fatalf("edited queue diff = %+v, want single title row", item.Diff)
	}
}

func TestNextQueueItemEmpty(t *testing.T) {
	svc, _ := newTestService(newFakeAdStore(), newFakeProfileStore(), newFakeEditRequestStore())

	for _, queue := range []enums.ModerationQueue{enums.QueueGeneral, enums.QueueMember, enums.QueueVerification, enums.QueueEdited} {
		if _, err := svc.NextQueueItem(context.Background(), queue); !errors.Is(err, ErrQueueEmpty) {
			t.Fatalf("queue %s: got %v, want ErrQueueEmpty", queue, err)
		}
	}
}

func TestRejectRequiresReason(t *testing.T) {
	userID := uuid.New()
	ad := testAd(userID, time.Now(), nil)
	ads := newFakeAdStore(ad)
	profiles := newFakeProfileStore(model.Profile{UserID: userID})
	svc, _ := newTestService(ads, profiles, newFakeEditRequestStore())

	err := svc.Reject(context.Background(), ad.ID, uuid.New(), AdForm{}, ProfileForm{}, RejectInput{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if len(ads.updates) != 0 || len(ads.rejects) != 0 {
		t.Fatalf("reject without reasons must not mutate the store")
	}

	err = svc.Reject(context.Background(), ad.ID, uuid.New(), AdForm{}, ProfileForm{}, RejectInput{Reasons: []string{"NOT_A_REAL_CODE"}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown reason code: got %v, want ErrValidation", err)
	}
}

func TestSaveReviewExpiryInvariant(t *testing.T) {
	userID := uuid.New()
	existing := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		features   []string
		preExpiry  *time.Time
		wantNil    bool
		wantFresh  bool
		wantExpiry *time.Time
	}{
		{name: "no expiration tag clears expiry", features: []string{enums.FeatureNoExpiration}, preExpiry: &existing, wantNil: true},
		{name: "missing expiry gets fresh 30 days", features: nil, preExpiry: nil, wantFresh: true},
		{name: "existing expiry preserved", features: nil, preExpiry: &existing, wantExpiry: &existing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ad := testAd(userID, time.Now(), func(a *model.Ad) { a.ExpiresAt = tc.preExpiry })
			ads := newFakeAdStore(ad)
			profiles := newFakeProfileStore(model.Profile{UserID: userID})
			svc, _ := newTestService(ads, profiles, newFakeEditRequestStore())

			before := time.Now().UTC()
			if err := svc.SaveReview(context.Background(), ad.ID, AdForm{Title: "x", Features: tc.features}, ProfileForm{}); err != nil {
				t.Fatalf("save review: %v", err)
			}

			got := ads.updates[ad.ID].ExpiresAt
			switch {
			case tc.wantNil:
				if got != nil {
					t.Fatalf("expires_at = %v, want nil", got)
				}
			case tc.wantFresh:
				if got == nil {
					t.Fatalf("expires_at is nil, want fresh expiry")
				}
				want := before.AddDate(0, 0, 30)
				if got.Before(want.Add(-time.Minute)) || got.After(want.Add(time.Minute)) {
					t.Fatalf("expires_at = %v, want ~%v", got, want)
				}
			default:
				if got == nil || !got.Equal(*tc.wantExpiry) {
					t.Fatalf("expires_at = %v, want %v", got, tc.wantExpiry)
				}
			}
		})
	}
}

func TestSaveReviewClearsStalePromotionExpiry(t *testing.T) {
	userID := uuid.New()
	promoExpiry := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		productTypes []string
		want         *time.Time
	}{
		{name: "expiry cleared when promotion tags removed", productTypes: nil, want: nil},
		{name: "expiry kept while a promotion tag survives", productTypes: []string{enums.ProductTopAd}, want: &promoExpiry},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ad := testAd(userID, time.Now(), func(a *model.Ad) {
				a.PromotionType = enums.PromotionTopAd
				a.PromotionExpiresAt = &promoExpiry
			})
			ads := newFakeAdStore(ad)
			profiles := newFakeProfileStore(model.Profile{UserID: userID})
			svc, _ := newTestService(ads, profiles, newFakeEditRequestStore())

			if err := svc.SaveReview(context.Background(), ad.ID, AdForm{Title: "x", ProductTypes: tc.productTypes}, ProfileForm{}); err != nil {
				t.Fatalf("save review: %v", err)
			}

			got := ads.updates[ad.ID].PromotionExpiresAt
			if tc.want == nil {
				if got != nil {
					t.Fatalf("promotion_expires_at = %v, want nil", got)
				}
				return
			}
			if got == nil || !got.Equal(*tc.want) {
				t.Fatalf("promotion_expires_at = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRejectDuplicateSelfReferenceDropped(t *testing.T) {
	userID := uuid.New()
	ad := testAd(userID, time.Now(), nil)
	other := testAd(userID, time.Now(), nil)
	ads := newFakeAdStore(ad, other)
	profiles := newFakeProfileStore(model.Profile{UserID: userID})
	svc, _ := newTestService(ads, profiles, newFakeEditRequestStore())

	err := svc.Reject(context.Background(), ad.ID, uuid.New(), AdForm{Title: ad.Title}, ProfileForm{}, RejectInput{
		Reasons:      []string{"DUPLICATE_AD"},
		DuplicateRef: ad.ID.String(),
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(ads.rejects) != 1 {
		t.Fatalf("expected one reject call, got %d", len(ads.rejects))
	}
	if ads.rejects[0].duplicateOf != nil {
		t.Fatalf("self-referencing duplicate must be dropped, got %v", ads.rejects[0].duplicateOf)
	}

	// A genuine duplicate reference is kept.
	err = svc.Reject(context.Background(), other.ID, uuid.New(), AdForm{Title: other.Title}, ProfileForm{}, RejectInput{
		Reasons:      []string{"DUPLICATE_AD"},
		DuplicateRef: "https://bazarhat.com/ads/" + ad.Slug,
	})
	if err != nil {
		t.Fatalf("reject with duplicate: %v", err)
	}
	dup := ads.rejects[1].duplicateOf
	if dup == nil || *dup != ad.ID {
		t.Fatalf("duplicate_of = %v, want %s", dup, ad.ID)
	}
}

func TestApproveAdvancesQueue(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := testAd(userID, base, nil)
	second := testAd(userID, base.Add(time.Hour), nil)
	ads := newFakeAdStore(first, second)
	profiles := newFakeProfileStore(model.Profile{UserID: userID})
	svc, audits := newTestService(ads, profiles, newFakeEditRequestStore())

	item, err := svc.NextQueueItem(context.Background(), enums.QueueGeneral)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if item.Ad.ID != first.ID {
		t.Fatalf("got %s, want oldest %s", item.Ad.ID, first.ID)
	}

	reviewer := uuid.New()
	form := AdForm{Title: "Edited title"}
	if err := svc.Approve(context.Background(), item.Ad.ID, reviewer, form, ProfileForm{}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	approved := ads.ads[first.ID]
	if approved.Status != enums.AdStatusApproved || approved.NeedsVerification {
		t.Fatalf("approved ad state = %+v", approved)
	}
	if approved.Title != "Edited title" {
		t.Fatalf("form edit not persisted, title = %q", approved.Title)
	}
	if approved.LastReviewedBy == nil || *approved.LastReviewedBy != reviewer {
		t.Fatalf("reviewer not stamped")
	}
	if len(audits.entries) != 1 || audits.entries[0].Action != "ad_approved" {
		t.Fatalf("audit entries = %+v", audits.entries)
	}

	next, err := svc.NextQueueItem(context.Background(), enums.QueueGeneral)
	if err != nil {
		t.Fatalf("next after approve: %v", err)
	}
	if next.Ad.ID != second.ID {
		t.Fatalf("queue did not advance: got %s, want %s", next.Ad.ID, second.ID)
	}
}

func TestApproveEditPersistsFormAndFlipsRequest(t *testing.T) {
	userID := uuid.New()
	ad := testAd(userID, time.Now(), func(a *model.Ad) { a.Status = enums.AdStatusApproved })
	request := model.AdEditRequest{
		ID:        uuid.New(),
		AdID:      ad.ID,
		UserID:    userID,
		Status:    enums.EditRequestPending,
		OldValues: map[string]any{"title": ad.Title},
		NewValues: map[string]any{"title": "Requested title"},
		CreatedAt: time.Now(),
	}
	ads := newFakeAdStore(ad)
	profiles := newFakeProfileStore(model.Profile{UserID: userID})
	requests := newFakeEditRequestStore(request)
	svc, _ := newTestService(ads, profiles, requests)

	reviewer := uuid.New()
	// The moderator amended the requested title before approving; the form
	// value wins.
	form := AdForm{Title: "Moderator amended title"}
	if err := svc.ApproveEdit(context.Background(), request.ID, reviewer, form, ProfileForm{}); err != nil {
		t.Fatalf("approve edit: %v", err)
	}

	if got := ads.ads[ad.ID].Title; got != "Moderator amended title" {
		t.Fatalf("ad title = %q, want the moderator's form value", got)
	}
	updated := requests.requests[request.ID]
	if updated.Status != enums.EditRequestApproved {
		t.Fatalf("request status = %s", updated.Status)
	}
	if updated.ReviewedBy == nil || *updated.ReviewedBy != reviewer {
		t.Fatalf("request reviewer not stamped")
	}
}

func TestRejectEditLeavesAdUntouched(t *testing.T) {
	userID := uuid.New()
	ad := testAd(userID, time.Now(), func(a *model.Ad) { a.Status = enums.AdStatusApproved })
	request := model.AdEditRequest{
		ID:        uuid.New(),
		AdID:      ad.ID,
		UserID:    userID,
		Status:    enums.EditRequestPending,
		CreatedAt: time.Now(),
	}
	ads := newFakeAdStore(ad)
	profiles := newFakeProfileStore(model.Profile{UserID: userID})
	requests := newFakeEditRequestStore(request)
	svc, _ := newTestService(ads, profiles, requests)

	if err := svc.RejectEdit(context.Background(), request.ID, uuid.New(), "not acceptable"); err != nil {
		t.Fatalf("reject edit: %v", err)
	}

	if len(ads.updates) != 0 {
		t.Fatalf("ad must be untouched on edit rejection")
	}
	updated := requests.requests[request.ID]
	if updated.Status != enums.EditRequestRejected || updated.ReviewerMessage != "not acceptable" {
		t.Fatalf("request = %+v", updated)
	}
}

func TestLookupPrecedence(t *testing.T) {
	userID := uuid.New()
	ad := testAd(userID, time.Now(), func(a *model.Ad) { a.Slug = "blue-bicycle-mirpur" })
	ads := newFakeAdStore(ad)
	profiles := newFakeProfileStore(model.Profile{UserID: userID})
	svc, _ := newTestService(ads, profiles, newFakeEditRequestStore())

	tests := []struct {
		name string
		raw  string
	}{
		{"bare uuid", ad.ID.String()},
		{"uuid inside url", "https://bazarhat.com/ads/" + ad.ID.String() + "?src=admin"},
		{"slug as trailing segment", "https://bazarhat.com/ads/blue-bicycle-mirpur"},
		{"bare slug", "blue-bicycle-mirpur"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item, err := svc.Lookup(context.Background(), enums.QueueGeneral, tc.raw)
			if err != nil {
				t.Fatalf("lookup %q: %v", tc.raw, err)
			}
			if item.Ad.ID != ad.ID {
				t.Fatalf("lookup %q resolved %s, want %s", tc.raw, item.Ad.ID, ad.ID)
			}
		})
	}

	if _, err := svc.Lookup(context.Background(), enums.QueueGeneral, "no-such-slug"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing slug: got %v, want ErrNotFound", err)
	}
}

func TestLookupEditedFallsThroughRequestThenAd(t *testing.T) {
	userID := uuid.New()
	ad := testAd(userID, time.Now(), func(a *model.Ad) {
		a.Status = enums.AdStatusApproved
		a.Slug = "sofa-set-uttara"
	})
	request := model.AdEditRequest{
		ID:        uuid.New(),
		AdID:      ad.ID,
		UserID:    userID,
		Status:    enums.EditRequestPending,
		CreatedAt: time.Now(),
	}
	ads := newFakeAdStore(ad)
	profiles := newFakeProfileStore(model.Profile{UserID: userID})
	requests := newFakeEditRequestStore(request)
	svc, _ := newTestService(ads, profiles, requests)

	for _, raw := range []string{request.ID.String(), ad.ID.String(), "sofa-set-uttara"} {
		item, err := svc.Lookup(context.Background(), enums.QueueEdited, raw)
		if err != nil {
			t.Fatalf("lookup %q: %v", raw, err)
		}
		if item.EditRequest == nil || item.EditRequest.ID != request.ID {
			t.Fatalf("lookup %q did not resolve the pending request", raw)
		}
	}
}
