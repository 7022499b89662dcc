package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authsvc "github.com/bazarhat/backend/internal/services/auth"
	repsvc "github.com/bazarhat/backend/internal/services/reports"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type AdminReportsHandler struct {
	reports *repsvc.Service
}

func NewAdminReportsHandler(reportsService *repsvc.Service) *AdminReportsHandler {
	return &AdminReportsHandler{reports: reportsService}
}

func (h *AdminReportsHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	reports, total, err := h.reports.ListOpen(r.Context(), parsePage(r.URL.Query().Get("page")))
	if err != nil {
		handleReportError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ReportListResponse{
		Reports: dto.NewReportResponses(reports),
		Total:   total,
	})
}

func (h *AdminReportsHandler) ListForAd(w http.ResponseWriter, r *http.Request) {
	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_AD_ID", "ad id must be a uuid")
		return
	}

	reports, err := h.reports.ListForAd(r.Context(), adID)
	if err != nil {
		handleReportError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewReportResponses(reports))
}

func (h *AdminReportsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "INVALID_REPORT_ID", "report id must be numeric")
		return
	}

	if err := h.reports.Resolve(r.Context(), id, identity.UserID); err != nil {
		handleReportError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

// ResolveForAd closes every open report against one ad in a single action.
func (h *AdminReportsHandler) ResolveForAd(w http.ResponseWriter, r *http.Request) {
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

	resolved, err := h.reports.ResolveForAd(r.Context(), adID, identity.UserID)
	if err != nil {
		handleReportError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BulkResultResponse{Matched: resolved})
}
