package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
	modsvc "github.com/bazarhat/backend/internal/services/moderation"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type auditLister interface {
	ListByAd(ctx context.Context, adID uuid.UUID) ([]model.AdAuditLog, error)
}

type ModerationHandler struct {
	moderation *modsvc.Service
	audits     auditLister
}

func NewModerationHandler(moderationService *modsvc.Service, audits auditLister) *ModerationHandler {
	return &ModerationHandler{moderation: moderationService, audits: audits}
}

func (h *ModerationHandler) Next(w http.ResponseWriter, r *http.Request) {
	queue, ok := enums.ParseModerationQueue(chi.URLParam(r, "queue"))
	if !ok {
		writeBadRequest(w, "INVALID_QUEUE", "unknown moderation queue")
		return
	}

	item, err := h.moderation.NextQueueItem(r.Context(), queue)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewQueueItemResponse(item))
}

// Lookup jumps the queue order and loads a specific item by id, slug or URL.
func (h *ModerationHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	queue, ok := enums.ParseModerationQueue(chi.URLParam(r, "queue"))
	if !ok {
		writeBadRequest(w, "INVALID_QUEUE", "unknown moderation queue")
		return
	}

	ref := r.URL.Query().Get("ref")
	if ref == "" {
		writeBadRequest(w, "INVALID_REQUEST", "ref query parameter is required")
		return
	}

	item, err := h.moderation.Lookup(r.Context(), queue, ref)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewQueueItemResponse(item))
}

func (h *ModerationHandler) Save(w http.ResponseWriter, r *http.Request) {
	adID, req, ok := h.reviewRequest(w, r)
	if !ok {
		return
	}

	if err := h.moderation.SaveReview(r.Context(), adID, adFormFromDTO(req.Ad), profileFormFromDTO(req.Profile)); err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	adID, req, ok := h.reviewRequest(w, r)
	if !ok {
		return
	}

	if err := h.moderation.Approve(r.Context(), adID, identity.UserID, adFormFromDTO(req.Ad), profileFormFromDTO(req.Profile)); err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_AD_ID", "ad id must be a uuid")
		return
	}

	var req dto.RejectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	err = h.moderation.Reject(r.Context(), adID, identity.UserID, adFormFromDTO(req.Ad), profileFormFromDTO(req.Profile), modsvc.RejectInput{
		Reasons:      req.Reasons,
		Message:      req.Message,
		DuplicateRef: req.DuplicateRef,
	})
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ModerationHandler) ApproveEdit(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST_ID", "edit request id must be a uuid")
		return
	}

	var req dto.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.moderation.ApproveEdit(r.Context(), requestID, identity.UserID, adFormFromDTO(req.Ad), profileFormFromDTO(req.Profile)); err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ModerationHandler) RejectEdit(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST_ID", "edit request id must be a uuid")
		return
	}

	var req dto.RejectEditRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.moderation.RejectEdit(r.Context(), requestID, identity.UserID, req.Message); err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ModerationHandler) RejectReasons(w http.ResponseWriter, r *http.Request) {
	items := modsvc.ListRejectReasons()
	out := make([]dto.RejectReasonResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.RejectReasonResponse{Code: item.ReasonCode, Label: item.Label})
	}
	httperrors.Write(w, http.StatusOK, out)
}

func (h *ModerationHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_AD_ID", "ad id must be a uuid")
		return
	}

	logs, err := h.audits.ListByAd(r.Context(), adID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load audit log")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewAuditLogResponses(logs))
}

func (h *ModerationHandler) reviewRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, dto.ReviewRequest, bool) {
	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_AD_ID", "ad id must be a uuid")
		return uuid.Nil, dto.ReviewRequest{}, false
	}

	var req dto.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return uuid.Nil, dto.ReviewRequest{}, false
	}

	return adID, req, true
}

func adFormFromDTO(form dto.AdForm) modsvc.AdForm {
	return modsvc.AdForm{
		Title:         form.Title,
		Description:   form.Description,
		CategoryID:    form.CategoryID,
		SubcategoryID: form.SubcategoryID,
		CustomFields:  form.CustomFields,
		Price:         form.Price,
		PriceType:     enums.PriceType(form.PriceType),
		MRP:           form.MRP,
		Discount:      form.Discount,
		AdType:        form.AdType,
		ProductTypes:  form.ProductTypes,
		Features:      form.Features,
		Division:      form.Division,
		District:      form.District,
		Area:          form.Area,
	}
}

func profileFormFromDTO(form dto.ProfileFormFields) modsvc.ProfileForm {
	return modsvc.ProfileForm{
		DisplayName:   form.DisplayName,
		Email:         form.Email,
		Phone:         form.Phone,
		AltPhone:      form.AltPhone,
		SellerType:    form.SellerType,
		ShowPhone:     form.ShowPhone,
		PhoneVerified: form.PhoneVerified,
	}
}

func handleModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, modsvc.ErrQueueEmpty):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, modsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "moderation item not found")
	case errors.Is(err, modsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
