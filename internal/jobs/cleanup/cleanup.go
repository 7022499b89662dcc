package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bazarhat/backend/internal/domain/model"
)

type adStore interface {
	ArchiveExpired(ctx context.Context, now time.Time) (int64, error)
	ListArchivedBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Ad, error)
	Purge(ctx context.Context, id uuid.UUID) error
}

type imageStore interface {
	ListByAd(ctx context.Context, adID uuid.UUID) ([]model.AdImage, error)
	DeleteByAd(ctx context.Context, adID uuid.UUID) error
}

type objectStorage interface {
	Delete(ctx context.Context, objectKey string) error
}

// Job archives listings past their expiry and purges long-archived ones,
// object storage included.
type Job struct {
	ads       adStore
	images    imageStore
	storage   objectStorage
	retention time.Duration
	batchSize int
	now       func() time.Time
	logger    *zap.Logger
}

func New() *Job {
	return &Job{
		retention: 90 * 24 * time.Hour,
		batchSize: 200,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
}

func NewAdCleanupJob(ads adStore, images imageStore, storage objectStorage, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		ads:       ads,
		images:    images,
		storage:   storage,
		retention: retention,
		batchSize: 200,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.ads == nil {
		return nil
	}

	now := j.now()
	archived, err := j.ads.ArchiveExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("archive expired ads: %w", err)
	}
	if archived > 0 {
		j.logger.Info("archive expired ads completed", zap.Int64("archived", archived))
	}

	cutoff := now.Add(-j.retention)
	stale, err := j.ads.ListArchivedBefore(ctx, cutoff, j.batchSize)
	if err != nil {
		return fmt.Errorf("list stale archived ads: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	for _, ad := range stale {
		if j.images != nil {
			images, listErr := j.images.ListByAd(ctx, ad.ID)
			if listErr != nil {
				return fmt.Errorf("list ad images: %w", listErr)
			}
			for _, img := range images {
				if j.storage == nil {
					continue
				}
				if err := j.storage.Delete(ctx, img.ObjectKey); err != nil {
					j.logger.Warn("failed to delete ad image from storage",
						zap.Error(err), zap.String("object_key", img.ObjectKey))
				}
			}
			if err := j.images.DeleteByAd(ctx, ad.ID); err != nil {
				return fmt.Errorf("delete ad image rows: %w", err)
			}
		}
		if err := j.ads.Purge(ctx, ad.ID); err != nil {
			return fmt.Errorf("purge archived ad: %w", err)
		}
	}

	j.logger.Info("purge stale archived ads completed", zap.Int("purged", len(stale)))
	return nil
}

// Start runs the job on the given interval until the context ends.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := j.Run(ctx); err != nil {
					j.logger.Error("cleanup job failed", zap.Error(err))
				}
			}
		}
	}()
}
