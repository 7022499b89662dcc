package favorites

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

type fakeFavoriteStore struct {
	byUser map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{byUser: map[uuid.UUID]map[uuid.UUID]bool{}}
}

func (f *fakeFavoriteStore) Add(_ context.Context, userID, adID uuid.UUID) error {
	if f.byUser[userID] == nil {
		f.byUser[userID] = map[uuid.UUID]bool{}
	}
	f.byUser[userID][adID] = true
	return nil
}

func (f *fakeFavoriteStore) Remove(_ context.Context, userID, adID uuid.UUID) error {
	delete(f.byUser[userID], adID)
	return nil
}

func (f *fakeFavoriteStore) Exists(_ context.Context, userID, adID uuid.UUID) (bool, error) {
	return f.byUser[userID][adID], nil
}

func (f *fakeFavoriteStore) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]model.Favorite, error) {
	var out []model.Favorite
	for adID := range f.byUser[userID] {
		out = append(out, model.Favorite{UserID: userID, AdID: adID})
	}
	return out, nil
}

func (f *fakeFavoriteStore) CountByAd(_ context.Context, adID uuid.UUID) (int, error) {
	n := 0
	for _, ads := range f.byUser {
		if ads[adID] {
			n++
		}
	}
	return n, nil
}

type fakeSavedSearchStore struct {
	byUser map[uuid.UUID][]model.SavedSearch
	nextID int64
}

func newFakeSavedSearchStore() *fakeSavedSearchStore {
	return &fakeSavedSearchStore{byUser: map[uuid.UUID][]model.SavedSearch{}, nextID: 1}
}

func (f *fakeSavedSearchStore) Create(_ context.Context, search model.SavedSearch) (int64, error) {
	search.ID = f.nextID
	f.nextID++
	f.byUser[search.UserID] = append(f.byUser[search.UserID], search)
	return search.ID, nil
}

func (f *fakeSavedSearchStore) ListByUser(_ context.Context, userID uuid.UUID) ([]model.SavedSearch, error) {
	return f.byUser[userID], nil
}

func (f *fakeSavedSearchStore) Delete(_ context.Context, id int64, userID uuid.UUID) error {
	searches := f.byUser[userID]
	for i, s := range searches {
		if s.ID == id {
			f.byUser[userID] = append(searches[:i], searches[i+1:]...)
			return nil
		}
	}
	return pgrepo.ErrSavedSearchNotFound
}

type fakeAdStore struct {
	ads map[uuid.UUID]model.Ad
}

func (f *fakeAdStore) GetByID(_ context.Context, id uuid.UUID) (model.Ad, error) {
	ad, ok := f.ads[id]
	if !ok {
		return model.Ad{}, pgrepo.ErrAdNotFound
	}
	return ad, nil
}

func TestAddIsIdempotent(t *testing.T) {
	userID, adID := uuid.New(), uuid.New()
	favs := newFakeFavoriteStore()
	ads := &fakeAdStore{ads: map[uuid.UUID]model.Ad{
		adID: {ID: adID, Status: enums.AdStatusApproved},
	}}
	svc := NewService(favs, newFakeSavedSearchStore(), ads, 24)

	for range 2 {
		if err := svc.Add(context.Background(), userID, adID); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	count, err := svc.CountForAd(context.Background(), adID)
	if err != nil {
		t.Fatalf("CountForAd: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestAddRejectsNonApproved(t *testing.T) {
	adID := uuid.New()
	ads := &fakeAdStore{ads: map[uuid.UUID]model.Ad{
		adID: {ID: adID, Status: enums.AdStatusPending},
	}}
	svc := NewService(newFakeFavoriteStore(), newFakeSavedSearchStore(), ads, 24)

	if err := svc.Add(context.Background(), uuid.New(), adID); !errors.Is(err, ErrValidation) {
		t.Fatalf("pending ad: err = %v, want ErrValidation", err)
	}
	if err := svc.Add(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing ad: err = %v, want ErrNotFound", err)
	}
}

func TestSaveSearchLimit(t *testing.T) {
	userID := uuid.New()
	searches := newFakeSavedSearchStore()
	svc := NewService(newFakeFavoriteStore(), searches, &fakeAdStore{}, 24)

	for i := 0; i < maxSavedSearches; i++ {
		_, err := svc.SaveSearch(context.Background(), userID, SavedSearchInput{
			Name:  fmt.Sprintf("search %d", i),
			Query: map[string]any{"q": i},
		})
		if err != nil {
			t.Fatalf("SaveSearch %d: %v", i, err)
		}
	}

	_, err := svc.SaveSearch(context.Background(), userID, SavedSearchInput{
		Name:  "one too many",
		Query: map[string]any{"q": "x"},
	})
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("over limit: err = %v, want ErrLimitReached", err)
	}
}

func TestDeleteSearchOwnerScoped(t *testing.T) {
	owner, stranger := uuid.New(), uuid.New()
	searches := newFakeSavedSearchStore()
	svc := NewService(newFakeFavoriteStore(), searches, &fakeAdStore{}, 24)

	id, err := svc.SaveSearch(context.Background(), owner, SavedSearchInput{Name: "bikes", Query: map[string]any{"q": "bike"}})
	if err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}

	if err := svc.DeleteSearch(context.Background(), id, stranger); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stranger delete: err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteSearch(context.Background(), id, owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestSaveSearchValidation(t *testing.T) {
	svc := NewService(newFakeFavoriteStore(), newFakeSavedSearchStore(), &fakeAdStore{}, 24)

	if _, err := svc.SaveSearch(context.Background(), uuid.New(), SavedSearchInput{Name: " ", Query: map[string]any{"q": 1}}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name: err = %v, want ErrValidation", err)
	}
	if _, err := svc.SaveSearch(context.Background(), uuid.New(), SavedSearchInput{Name: "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty query: err = %v, want ErrValidation", err)
	}
}
