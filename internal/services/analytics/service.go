package analytics

import (
	"context"
	"fmt"
	"time"

	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

const (
	statsCacheKey = "cache:dashboard:stats"
	statsCacheTTL = time.Minute
)

type StatsStore interface {
	Collect(ctx context.Context, now time.Time) (pgrepo.DashboardStats, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service serves the admin dashboard counters. The snapshot is cached for a
// minute; the dashboard polls far more often than the numbers move.
type Service struct {
	store StatsStore
	cache Cache
	now   func() time.Time
}

func NewService(store StatsStore, cache Cache) *Service {
	return &Service{store: store, cache: cache, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (pgrepo.DashboardStats, error) {
	if s.cache != nil {
		var cached pgrepo.DashboardStats
		if hit, err := s.cache.GetJSON(ctx, statsCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	stats, err := s.store.Collect(ctx, s.now())
	if err != nil {
		return pgrepo.DashboardStats{}, fmt.Errorf("collect dashboard stats: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL)
	}
	return stats, nil
}
