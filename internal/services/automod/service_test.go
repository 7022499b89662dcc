package automod

import (
	"context"
	"errors"
	"testing"

	"github.com/bazarhat/backend/internal/domain/model"
)

type fakeSettingStore struct {
	settings map[string]model.AutoModerationSetting
}

func newFakeSettingStore() *fakeSettingStore {
	return &fakeSettingStore{settings: map[string]model.AutoModerationSetting{}}
}

func (f *fakeSettingStore) List(context.Context) ([]model.AutoModerationSetting, error) {
	var out []model.AutoModerationSetting
	for _, s := range f.settings {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSettingStore) Get(_ context.Context, key string) (model.AutoModerationSetting, error) {
	return f.settings[key], nil
}

func (f *fakeSettingStore) Upsert(_ context.Context, setting model.AutoModerationSetting) error {
	f.settings[setting.Key] = setting
	return nil
}

func TestUpdateRejectsUnknownKey(t *testing.T) {
	svc := NewService(newFakeSettingStore())

	if err := svc.Update(context.Background(), "no_such_switch", true, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if err := svc.Update(context.Background(), "trusted_seller_auto_approve", true, -1); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative threshold: err = %v, want ErrValidation", err)
	}
}

func TestUpdateAndGet(t *testing.T) {
	store := newFakeSettingStore()
	svc := NewService(store)

	if err := svc.Update(context.Background(), "trusted_seller_auto_approve", true, 3); err != nil {
		t.Fatalf("Update: %v", err)
	}

	setting, err := svc.Get(context.Background(), "trusted_seller_auto_approve")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !setting.Enabled || setting.Threshold != 3 {
		t.Errorf("setting = %+v", setting)
	}

	if _, err := svc.Get(context.Background(), "bogus"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown key: err = %v, want ErrValidation", err)
	}
}
