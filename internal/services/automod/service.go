package automod

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bazarhat/backend/internal/domain/model"
)

var ErrValidation = errors.New("auto moderation input invalid")

// Known switch keys. Unknown keys are rejected so a typo in the admin UI
// cannot silently create a dead setting.
var knownKeys = map[string]struct{}{
	"trusted_seller_auto_approve": {},
	"block_contact_in_content":    {},
	"block_repeated_submission":   {},
}

type SettingStore interface {
	List(ctx context.Context) ([]model.AutoModerationSetting, error)
	Get(ctx context.Context, key string) (model.AutoModerationSetting, error)
	Upsert(ctx context.Context, setting model.AutoModerationSetting) error
}

type Service struct {
	store SettingStore
}

func NewService(store SettingStore) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]model.AutoModerationSetting, error) {
	settings, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auto moderation settings: %w", err)
	}
	return settings, nil
}

func (s *Service) Get(ctx context.Context, key string) (model.AutoModerationSetting, error) {
	if _, ok := knownKeys[key]; !ok {
		return model.AutoModerationSetting{}, ErrValidation
	}
	setting, err := s.store.Get(ctx, key)
	if err != nil {
		return model.AutoModerationSetting{}, fmt.Errorf("get auto moderation setting: %w", err)
	}
	return setting, nil
}

func (s *Service) Update(ctx context.Context, key string, enabled bool, threshold int) error {
	key = strings.TrimSpace(key)
	if _, ok := knownKeys[key]; !ok {
		return ErrValidation
	}
	if threshold < 0 {
		return ErrValidation
	}

	err := s.store.Upsert(ctx, model.AutoModerationSetting{
		Key:       key,
		Enabled:   enabled,
		Threshold: threshold,
	})
	if err != nil {
		return fmt.Errorf("save auto moderation setting: %w", err)
	}
	return nil
}
