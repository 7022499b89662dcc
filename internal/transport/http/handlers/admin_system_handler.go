package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	analyticssvc "github.com/bazarhat/backend/internal/services/analytics"
	automodsvc "github.com/bazarhat/backend/internal/services/automod"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

// AdminSystemHandler covers the dashboard snapshot and the auto-moderation
// switches.
type AdminSystemHandler struct {
	analytics *analyticssvc.Service
	automod   *automodsvc.Service
}

func NewAdminSystemHandler(analyticsService *analyticssvc.Service, automodService *automodsvc.Service) *AdminSystemHandler {
	return &AdminSystemHandler{analytics: analyticsService, automod: automodService}
}

func (h *AdminSystemHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to collect dashboard stats")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.DashboardResponse{
		PendingGeneral:    int64(stats.PendingGeneral),
		PendingMember:     int64(stats.PendingMember),
		NeedsVerification: int64(stats.NeedsVerification),
		PendingEdits:      int64(stats.PendingEdits),
		ApprovedAds:       int64(stats.ApprovedAds),
		RejectedAds:       int64(stats.RejectedAds),
		OpenReports:       int64(stats.OpenReports),
		EnqueuedEmails:    int64(stats.EnqueuedEmails),
		NewUsersToday:     int64(stats.NewUsersToday),
		AdsPostedToday:    int64(stats.AdsPostedToday),
	})
}

func (h *AdminSystemHandler) AutoModList(w http.ResponseWriter, r *http.Request) {
	settings, err := h.automod.List(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load settings")
		return
	}

	out := make([]dto.AutoModSettingResponse, 0, len(settings))
	for _, s := range settings {
		out = append(out, dto.AutoModSettingResponse{
			Key:       s.Key,
			Enabled:   s.Enabled,
			Threshold: s.Threshold,
		})
	}
	httperrors.Write(w, http.StatusOK, out)
}

func (h *AdminSystemHandler) AutoModUpdate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req dto.AutoModSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.automod.Update(r.Context(), key, req.Enabled, req.Threshold); err != nil {
		if errors.Is(err, automodsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "unknown setting or bad threshold")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to update setting")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
