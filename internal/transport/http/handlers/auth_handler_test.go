package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
)

type credentialStoreStub struct{}

func (credentialStoreStub) CredentialsByEmail(context.Context, string) (uuid.UUID, string, bool, error) {
	return uuid.Nil, "", false, pgrepo.ErrProfileNotFound
}

func (credentialStoreStub) Create(context.Context, model.Profile, string) error {
	return nil
}

type sessionStoreStub struct{}

func (sessionStoreStub) Create(context.Context, authsvc.SessionRecord, string) error { return nil }
func (sessionStoreStub) GetSession(context.Context, string) (authsvc.SessionRecord, error) {
	return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
}
func (sessionStoreStub) GetByRefreshToken(context.Context, string) (authsvc.SessionRecord, error) {
	return authsvc.SessionRecord{}, authsvc.ErrRefreshNotFound
}
func (sessionStoreStub) RotateRefresh(context.Context, string, string, string, time.Time) error {
	return nil
}
func (sessionStoreStub) DeleteSession(context.Context, string) error       { return nil }
func (sessionStoreStub) DeleteAllForUser(context.Context, uuid.UUID) error { return nil }

func TestLoginUnknownEmailReturnsInvalidCredentials(t *testing.T) {
	jwt := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwt, sessionStoreStub{}, credentialStoreStub{}, nil, time.Hour)
	h := NewAuthHandler(svc)

	body, err := json.Marshal(map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter2",
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("unexpected error code: got %q want %q", payload.Code, "INVALID_CREDENTIALS")
	}
}

func TestLoginRejectsUnknownFields(t *testing.T) {
	jwt := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwt, sessionStoreStub{}, credentialStoreStub{}, nil, time.Hour)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(`{"email":"a@b.c","password":"x","extra":true}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestLogoutWithoutIdentityReturnsUnauthorized(t *testing.T) {
	jwt := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwt, sessionStoreStub{}, credentialStoreStub{}, nil, time.Hour)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}
