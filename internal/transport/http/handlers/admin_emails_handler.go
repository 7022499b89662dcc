package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
	emailsvc "github.com/bazarhat/backend/internal/services/emaillog"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type AdminEmailsHandler struct {
	emails *emailsvc.Service
}

func NewAdminEmailsHandler(emailsService *emailsvc.Service) *AdminEmailsHandler {
	return &AdminEmailsHandler{emails: emailsService}
}

func (h *AdminEmailsHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.EnqueueEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	actorID := identity.UserID
	id, err := h.emails.Enqueue(r.Context(), emailsvc.EnqueueInput{
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
	}, &actorID)
	if err != nil {
		handleEmailError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *AdminEmailsHandler) List(w http.ResponseWriter, r *http.Request) {
	state := enums.EmailState(r.URL.Query().Get("state"))
	if state == "" {
		state = enums.EmailStateEnqueued
	}

	items, total, err := h.emails.ListByState(r.Context(), state, parsePage(r.URL.Query().Get("page")))
	if err != nil {
		handleEmailError(w, err)
		return
	}

	out := make([]dto.EmailResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewEmailResponse(item))
	}
	httperrors.Write(w, http.StatusOK, dto.EmailListResponse{Emails: out, Total: total})
}

func (h *AdminEmailsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := emailID(w, r)
	if !ok {
		return
	}

	item, events, err := h.emails.Get(r.Context(), id)
	if err != nil {
		handleEmailError(w, err)
		return
	}

	out := make([]dto.EmailEventResponse, 0, len(events))
	for _, ev := range events {
		resp := dto.EmailEventResponse{
			EventType: string(ev.EventType),
			CreatedAt: ev.CreatedAt,
		}
		if ev.ActorID != nil {
			resp.ActorID = ev.ActorID.String()
		}
		out = append(out, resp)
	}

	httperrors.Write(w, http.StatusOK, dto.EmailDetailResponse{
		Email:  dto.NewEmailResponse(item),
		Events: out,
	})
}

func (h *AdminEmailsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.emails.Approve)
}

func (h *AdminEmailsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.emails.Reject)
}

func (h *AdminEmailsHandler) decide(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id int64, reviewerID uuid.UUID) error) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	id, ok := emailID(w, r)
	if !ok {
		return
	}

	if err := action(r.Context(), id, identity.UserID); err != nil {
		handleEmailError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func emailID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "INVALID_EMAIL_ID", "email id must be numeric")
		return 0, false
	}
	return id, true
}

func handleEmailError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, emailsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, emailsvc.ErrNotFound):
		writeNotFound(w, "EMAIL_NOT_FOUND", "email not found")
	case errors.Is(err, emailsvc.ErrStateConflict):
		writeConflict(w, "ALREADY_DECIDED", "email was already decided")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
