package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/model"
)

type fakeAdStore struct {
	expired []model.Ad
	stale   []model.Ad
	purged  []uuid.UUID
}

func (f *fakeAdStore) ArchiveExpired(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(f.expired)), nil
}

func (f *fakeAdStore) ListArchivedBefore(_ context.Context, cutoff time.Time, _ int) ([]model.Ad, error) {
	var out []model.Ad
	for _, ad := range f.stale {
		if ad.UpdatedAt.Before(cutoff) {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (f *fakeAdStore) Purge(_ context.Context, id uuid.UUID) error {
	f.purged = append(f.purged, id)
	return nil
}

type fakeImageStore struct {
	byAd    map[uuid.UUID][]model.AdImage
	deleted []uuid.UUID
}

func (f *fakeImageStore) ListByAd(_ context.Context, adID uuid.UUID) ([]model.AdImage, error) {
	return f.byAd[adID], nil
}

func (f *fakeImageStore) DeleteByAd(_ context.Context, adID uuid.UUID) error {
	f.deleted = append(f.deleted, adID)
	delete(f.byAd, adID)
	return nil
}

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) Delete(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func TestRunPurgesAdsArchivedPastRetention(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

	oldAd := model.Ad{ID: uuid.New(), IsArchived: true, UpdatedAt: now.Add(-91 * 24 * time.Hour)}
	freshAd := model.Ad{ID: uuid.New(), IsArchived: true, UpdatedAt: now.Add(-10 * 24 * time.Hour)}

	ads := &fakeAdStore{stale: []model.Ad{oldAd, freshAd}}
	images := &fakeImageStore{byAd: map[uuid.UUID][]model.AdImage{
		oldAd.ID: {{AdID: oldAd.ID, ObjectKey: "k1"}, {AdID: oldAd.ID, ObjectKey: "k2"}},
	}}
	storage := &fakeStorage{}

	job := NewAdCleanupJob(ads, images, storage, 90*24*time.Hour, nil)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run cleanup job: %v", err)
	}

	if len(ads.purged) != 1 || ads.purged[0] != oldAd.ID {
		t.Fatalf("purged = %v, want only %s", ads.purged, oldAd.ID)
	}
	if len(storage.deleted) != 2 {
		t.Fatalf("storage deletes = %v, want 2 keys", storage.deleted)
	}
	if len(images.deleted) != 1 || images.deleted[0] != oldAd.ID {
		t.Fatalf("image row deletes = %v", images.deleted)
	}
}

func TestRunWithoutStoresIsNoop(t *testing.T) {
	job := New()
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run empty job: %v", err)
	}
}
