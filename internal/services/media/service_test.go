package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type putCall struct {
	key         string
	contentType string
	size        int64
}

type fakeStorage struct {
	puts    []putCall
	deleted []string
}

func (f *fakeStorage) EnsureBucket(_ context.Context) error { return nil }

func (f *fakeStorage) Put(_ context.Context, key string, _ io.Reader, size int64, contentType string) error {
	f.puts = append(f.puts, putCall{key: key, contentType: contentType, size: size})
	return nil
}

func (f *fakeStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func TestUploadAdImageKeyShape(t *testing.T) {
	ads := &fakeStorage{}
	svc := NewService(ads, &fakeStorage{}, 8)
	adID := uuid.New()

	key, err := svc.UploadAdImage(context.Background(), adID, 0, "My Photo (1).JPG", "image/jpeg", bytes.NewReader([]byte("img")), 3)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(key, adID.String()+"/") {
		t.Fatalf("key %q not prefixed with ad id", key)
	}
	if !strings.HasSuffix(key, "-My-Photo--1-.JPG") {
		t.Fatalf("filename not sanitized into key: %q", key)
	}
	if len(ads.puts) != 1 || ads.puts[0].key != key {
		t.Fatalf("put calls = %+v", ads.puts)
	}
}

func TestUploadAdImageEnforcesCap(t *testing.T) {
	svc := NewService(&fakeStorage{}, &fakeStorage{}, 2)

	_, err := svc.UploadAdImage(context.Background(), uuid.New(), 2, "x.jpg", "image/jpeg", bytes.NewReader([]byte("img")), 3)
	if !errors.Is(err, ErrImageLimitReached) {
		t.Fatalf("got %v, want ErrImageLimitReached", err)
	}
}

func TestUploadAvatarKeyShape(t *testing.T) {
	avatars := &fakeStorage{}
	svc := NewService(&fakeStorage{}, avatars, 8)
	userID := uuid.New()

	key, err := svc.UploadAvatar(context.Background(), userID, "image/png", bytes.NewReader([]byte("img")), 3)
	if err != nil {
		t.Fatalf("upload avatar: %v", err)
	}
	if !strings.HasPrefix(key, userID.String()+"/") || !strings.HasSuffix(key, "-avatar") {
		t.Fatalf("avatar key shape wrong: %q", key)
	}
}

func TestUploadValidation(t *testing.T) {
	svc := NewService(&fakeStorage{}, &fakeStorage{}, 8)

	if _, err := svc.UploadAdImage(context.Background(), uuid.Nil, 0, "x.jpg", "image/jpeg", bytes.NewReader(nil), 3); !errors.Is(err, ErrValidation) {
		t.Fatalf("nil ad id: got %v", err)
	}
	if _, err := svc.UploadAvatar(context.Background(), uuid.New(), "image/png", nil, 3); !errors.Is(err, ErrValidation) {
		t.Fatalf("nil body: got %v", err)
	}
	if _, err := svc.UploadAvatar(context.Background(), uuid.New(), "image/png", bytes.NewReader(nil), 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero size: got %v", err)
	}
}
