package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
	modsvc "github.com/bazarhat/backend/internal/services/moderation"
)

type emptyAdStoreStub struct{}

func (emptyAdStoreStub) GetByID(_ context.Context, _ uuid.UUID) (model.Ad, error) {
	return model.Ad{}, pgrepo.ErrAdNotFound
}

func (emptyAdStoreStub) GetBySlug(_ context.Context, _ string) (model.Ad, error) {
	return model.Ad{}, pgrepo.ErrAdNotFound
}

func (emptyAdStoreStub) NextPending(_ context.Context, _ bool) (model.Ad, error) {
	return model.Ad{}, pgrepo.ErrAdNotFound
}

func (emptyAdStoreStub) NextNeedsVerification(_ context.Context) (model.Ad, error) {
	return model.Ad{}, pgrepo.ErrAdNotFound
}

func (emptyAdStoreStub) UpdateReview(_ context.Context, _ uuid.UUID, _ pgrepo.AdReviewPatch) error {
	return pgrepo.ErrAdNotFound
}

func (emptyAdStoreStub) SetApproved(_ context.Context, _, _ uuid.UUID, _ time.Time) error {
	return pgrepo.ErrAdNotFound
}

func (emptyAdStoreStub) SetRejected(_ context.Context, _, _ uuid.UUID, _ []string, _ string, _ *uuid.UUID, _ time.Time) error {
	return pgrepo.ErrAdNotFound
}

type emptyProfileStoreStub struct{}

func (emptyProfileStoreStub) GetByUserID(_ context.Context, _ uuid.UUID) (model.Profile, error) {
	return model.Profile{}, pgrepo.ErrProfileNotFound
}

func (emptyProfileStoreStub) UpdateReview(_ context.Context, _ uuid.UUID, _ pgrepo.ProfileReviewPatch) error {
	return pgrepo.ErrProfileNotFound
}

type emptyEditRequestStoreStub struct{}

func (emptyEditRequestStoreStub) NextPending(_ context.Context) (model.AdEditRequest, error) {
	return model.AdEditRequest{}, pgrepo.ErrEditRequestNotFound
}

func (emptyEditRequestStoreStub) GetByID(_ context.Context, _ uuid.UUID) (model.AdEditRequest, error) {
	return model.AdEditRequest{}, pgrepo.ErrEditRequestNotFound
}

func (emptyEditRequestStoreStub) LatestPendingByAd(_ context.Context, _ uuid.UUID) (model.AdEditRequest, error) {
	return model.AdEditRequest{}, pgrepo.ErrEditRequestNotFound
}

func (emptyEditRequestStoreStub) SetApproved(_ context.Context, _, _ uuid.UUID, _ time.Time) error {
	return pgrepo.ErrEditRequestNotFound
}

func (emptyEditRequestStoreStub) SetRejected(_ context.Context, _, _ uuid.UUID, _ string, _ time.Time) error {
	return pgrepo.ErrEditRequestNotFound
}

type noImagesStub struct{}

func (noImagesStub) ListByAd(_ context.Context, _ uuid.UUID) ([]model.AdImage, error) {
	return nil, nil
}

type noAuditStub struct{}

func (noAuditStub) Create(_ context.Context, _ model.AdAuditLog) error {
	return nil
}

func newEmptyModerationHandler() *ModerationHandler {
	svc := modsvc.NewService(emptyAdStoreStub{}, emptyProfileStoreStub{}, emptyEditRequestStoreStub{}, noImagesStub{}, noAuditStub{}, nil, 30)
	return NewModerationHandler(svc, nil)
}

func queueRequest(queue string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("queue", queue)
	req := httptest.NewRequest(http.MethodGet, "/admin/queues/"+queue+"/next", nil)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestNextEmptyQueueReturnsNoContent(t *testing.T) {
	h := newEmptyModerationHandler()

	for _, queue := range []string{"general", "member", "verification", "edited"} {
		rr := httptest.NewRecorder()
		h.Next(rr, queueRequest(queue))

		if rr.Code != http.StatusNoContent {
			t.Fatalf("queue %q: unexpected status: got %d want %d", queue, rr.Code, http.StatusNoContent)
		}
		if rr.Body.Len() != 0 {
			t.Fatalf("queue %q: expected empty body, got %q", queue, rr.Body.String())
		}
	}
}

func TestNextUnknownQueueReturnsBadRequest(t *testing.T) {
	h := newEmptyModerationHandler()

	rr := httptest.NewRecorder()
	h.Next(rr, queueRequest("priority"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}
