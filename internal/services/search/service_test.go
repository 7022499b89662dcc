package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

type bulkCall struct {
	action  string
	ids     []uuid.UUID
	reasons []string
}

type fakeSearchStore struct {
	searchFilters []pgrepo.AdminSearchFilters
	searchResult  []model.Ad
	bulkCalls     []bulkCall
}

func (f *fakeSearchStore) AdminSearch(_ context.Context, filters pgrepo.AdminSearchFilters) ([]model.Ad, int, error) {
	f.searchFilters = append(f.searchFilters, filters)
	return f.searchResult, len(f.searchResult), nil
}

func (f *fakeSearchStore) BulkApprove(_ context.Context, ids []uuid.UUID, _ uuid.UUID, _ time.Time) (pgrepo.BulkResult, error) {
	f.bulkCalls = append(f.bulkCalls, bulkCall{action: "approve", ids: ids})
	return pgrepo.BulkResult{Matched: int64(len(ids))}, nil
}

func (f *fakeSearchStore) BulkReject(_ context.Context, ids []uuid.UUID, _ uuid.UUID, reasons []string, _ time.Time) (pgrepo.BulkResult, error) {
	f.bulkCalls = append(f.bulkCalls, bulkCall{action: "reject", ids: ids, reasons: reasons})
	return pgrepo.BulkResult{Matched: int64(len(ids))}, nil
}

func (f *fakeSearchStore) BulkSetDeactivated(_ context.Context, ids []uuid.UUID, deactivated bool) (pgrepo.BulkResult, error) {
	action := "deactivate"
	if !deactivated {
		action = "reactivate"
	}
	f.bulkCalls = append(f.bulkCalls, bulkCall{action: action, ids: ids})
	return pgrepo.BulkResult{Matched: int64(len(ids))}, nil
}

func (f *fakeSearchStore) BulkSetArchived(_ context.Context, ids []uuid.UUID, archived bool) (pgrepo.BulkResult, error) {
	action := "archive"
	if !archived {
		action = "unarchive"
	}
	f.bulkCalls = append(f.bulkCalls, bulkCall{action: action, ids: ids})
	return pgrepo.BulkResult{Matched: int64(len(ids))}, nil
}

func TestSearchAdsClassifiesQuery(t *testing.T) {
	store := &fakeSearchStore{}
	svc := NewService(store, nil, 24)

	id := uuid.New()
	tests := []struct {
		query string
		check func(t *testing.T, f pgrepo.AdminSearchFilters)
	}{
		{id.String(), func(t *testing.T, f pgrepo.AdminSearchFilters) {
			if f.QueryUUID == nil || *f.QueryUUID != id {
				t.Fatalf("uuid not routed: %+v", f)
			}
		}},
		{"seller@example.com", func(t *testing.T, f pgrepo.AdminSearchFilters) {
			if f.QueryEmail != "seller@example.com" {
				t.Fatalf("email not routed: %+v", f)
			}
		}},
		{"+880 1712-345678", func(t *testing.T, f pgrepo.AdminSearchFilters) {
			if f.QueryPhone != "+8801712345678" {
				t.Fatalf("phone not normalized: %q", f.QueryPhone)
			}
		}},
		{"blue-bicycle", func(t *testing.T, f pgrepo.AdminSearchFilters) {
			if f.QuerySlug != "blue-bicycle" {
				t.Fatalf("slug not routed: %+v", f)
			}
		}},
	}
	for _, tc := range tests {
		if _, err := svc.SearchAds(context.Background(), Filters{Query: tc.query}); err != nil {
			t.Fatalf("search %q: %v", tc.query, err)
		}
		tc.check(t, store.searchFilters[len(store.searchFilters)-1])
	}
}

func TestSearchAdsTagFilterInMemory(t *testing.T) {
	store := &fakeSearchStore{searchResult: []model.Ad{
		{ID: uuid.New(), AdType: "sell", ProductTypes: []string{"Product_FEATURED_AD"}},
		{ID: uuid.New(), AdType: "rent"},
		{ID: uuid.New(), AdType: "sell"},
	}}
	svc := NewService(store, nil, 24)

	result, err := svc.SearchAds(context.Background(), Filters{AdType: "sell", ProductTypes: []string{"Product_FEATURED_AD"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result.Ads) != 1 {
		t.Fatalf("got %d ads after tag filter, want 1", len(result.Ads))
	}
}

func TestBulkRejectRequiresSelectionAndReason(t *testing.T) {
	store := &fakeSearchStore{}
	svc := NewService(store, nil, 24)
	actor := uuid.New()

	if _, err := svc.BulkUpdateAds(context.Background(), nil, BulkReject, []string{"SPAM"}, actor); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty selection: got %v, want ErrValidation", err)
	}
	if _, err := svc.BulkUpdateAds(context.Background(), []uuid.UUID{uuid.New()}, BulkReject, nil, actor); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty reasons: got %v, want ErrValidation", err)
	}
	if len(store.bulkCalls) != 0 {
		t.Fatalf("invalid bulk reject must not reach the store")
	}

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	result, err := svc.BulkUpdateAds(context.Background(), ids, BulkReject, []string{"SPAM"}, actor)
	if err != nil {
		t.Fatalf("bulk reject: %v", err)
	}
	if result.Matched != 2 {
		t.Fatalf("matched = %d, want 2", result.Matched)
	}
	if len(store.bulkCalls) != 1 || store.bulkCalls[0].action != "reject" {
		t.Fatalf("bulk calls = %+v", store.bulkCalls)
	}
}

func TestBulkActionsRequireOnlySelection(t *testing.T) {
	store := &fakeSearchStore{}
	svc := NewService(store, nil, 24)
	actor := uuid.New()
	ids := []uuid.UUID{uuid.New()}

	for _, action := range []BulkAction{BulkApprove, BulkDeactivate, BulkReactivate, BulkArchive, BulkUnarchive} {
		if _, err := svc.BulkUpdateAds(context.Background(), ids, action, nil, actor); err != nil {
			t.Fatalf("bulk %s: %v", action, err)
		}
	}
	if _, err := svc.BulkUpdateAds(context.Background(), ids, BulkAction("explode"), nil, actor); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown action: got %v, want ErrValidation", err)
	}
}
