package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrImageLimitReached = errors.New("image limit reached")
)

const signedURLTTL = 5 * time.Minute

// ObjectStorage is one bucket. The service holds two: ad images and avatars.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	ads      ObjectStorage
	avatars  ObjectStorage
	maxPerAd int
	now      func() time.Time
}

func NewService(ads, avatars ObjectStorage, maxPerAd int) *Service {
	if maxPerAd <= 0 {
		maxPerAd = 8
	}

	return &Service{
		ads:      ads,
		avatars:  avatars,
		maxPerAd: maxPerAd,
		now:      time.Now,
	}
}

// UploadAdImage stores one image under "{adID}/{timestamp}-{filename}" in the
// ads bucket and returns the object key. existingCount enforces the per-ad cap.
func (s *Service) UploadAdImage(ctx context.Context, adID uuid.UUID, existingCount int, fileName, contentType string, body io.Reader, size int64) (string, error) {
	if adID == uuid.Nil || body == nil || size <= 0 {
		return "", ErrValidation
	}
	if existingCount >= s.maxPerAd {
		return "", ErrImageLimitReached
	}
	if s.ads == nil {
		return "", fmt.Errorf("ads storage is not configured")
	}

	if err := s.ads.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure ads bucket: %w", err)
	}

	key := fmt.Sprintf("%s/%d-%s", adID, s.now().UnixMilli(), sanitizeFileName(fileName))
	if err := s.ads.Put(ctx, key, body, size, contentType); err != nil {
		return "", fmt.Errorf("upload ad image: %w", err)
	}

	return key, nil
}

// UploadAvatar stores the avatar under "{userID}/{timestamp}-avatar",
// replacing whatever key the profile held before; the caller persists the new
// key and may delete the old one.
func (s *Service) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader, size int64) (string, error) {
	if userID == uuid.Nil || body == nil || size <= 0 {
		return "", ErrValidation
	}
	if s.avatars == nil {
		return "", fmt.Errorf("avatar storage is not configured")
	}

	if err := s.avatars.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure avatar bucket: %w", err)
	}

	key := fmt.Sprintf("%s/%d-avatar", userID, s.now().UnixMilli())
	if err := s.avatars.Put(ctx, key, body, size, contentType); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return key, nil
}

func (s *Service) SignAdImage(ctx context.Context, key string) (string, error) {
	if s.ads == nil {
		return "", fmt.Errorf("ads storage is not configured")
	}
	return s.ads.PresignGet(ctx, key, signedURLTTL)
}

func (s *Service) SignAvatar(ctx context.Context, key string) (string, error) {
	if s.avatars == nil {
		return "", fmt.Errorf("avatar storage is not configured")
	}
	return s.avatars.PresignGet(ctx, key, signedURLTTL)
}

func (s *Service) DeleteAdImage(ctx context.Context, key string) error {
	if s.ads == nil {
		return nil
	}
	return s.ads.Delete(ctx, key)
}

func sanitizeFileName(fileName string) string {
	name := path.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	return name
}
