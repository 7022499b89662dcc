package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authsvc "github.com/bazarhat/backend/internal/services/auth"
	repsvc "github.com/bazarhat/backend/internal/services/reports"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type ReportsHandler struct {
	reports *repsvc.Service
}

func NewReportsHandler(reportsService *repsvc.Service) *ReportsHandler {
	return &ReportsHandler{reports: reportsService}
}

func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ReportAdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	id, err := h.reports.Create(r.Context(), identity.UserID, repsvc.CreateInput{
		AdID:    adID,
		Reason:  req.Reason,
		Details: req.Details,
	})
	if err != nil {
		handleReportError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *ReportsHandler) Reasons(w http.ResponseWriter, r *http.Request) {
	codes := repsvc.Reasons()
	out := make([]dto.ReportReasonResponse, 0, len(codes))
	for _, code := range codes {
		label, _ := repsvc.ReasonLabel(code)
		out = append(out, dto.ReportReasonResponse{Code: code, Label: label})
	}
	httperrors.Write(w, http.StatusOK, out)
}

func handleReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, repsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "report target not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
