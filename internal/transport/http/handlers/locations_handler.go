package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	locsvc "github.com/bazarhat/backend/internal/services/locations"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type LocationsHandler struct {
	locations *locsvc.Service
}

func NewLocationsHandler(locationsService *locsvc.Service) *LocationsHandler {
	return &LocationsHandler{locations: locationsService}
}

func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.locations.List()
	if err != nil {
		handleLocationError(w, err)
		return
	}

	out := make([]dto.DivisionResponse, 0, len(divisions))
	for _, d := range divisions {
		out = append(out, dto.DivisionResponse{Name: d.Name, Districts: d.Districts})
	}
	httperrors.Write(w, http.StatusOK, dto.DivisionListResponse{Divisions: out})
}

func (h *LocationsHandler) Districts(w http.ResponseWriter, r *http.Request) {
	districts, err := h.locations.Districts(chi.URLParam(r, "division"))
	if err != nil {
		handleLocationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, districts)
}

func handleLocationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, locsvc.ErrValidation):
		writeNotFound(w, "DIVISION_NOT_FOUND", "division not found")
	case errors.Is(err, locsvc.ErrNoDivisions):
		writeInternal(w, "LOCATIONS_UNAVAILABLE", "no divisions configured")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
