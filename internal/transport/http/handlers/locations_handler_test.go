package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bazarhat/backend/internal/config"
	locsvc "github.com/bazarhat/backend/internal/services/locations"
)

func newLocationsHandler() *LocationsHandler {
	svc := locsvc.NewService([]config.DivisionMeta{
		{Name: "Dhaka", Districts: []string{"Dhaka", "Gazipur"}},
		{Name: "Chattogram", Districts: []string{"Chattogram"}},
	})
	return NewLocationsHandler(svc)
}

func TestLocationsListReturnsConfiguredDivisions(t *testing.T) {
	h := newLocationsHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/locations", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	var payload struct {
		Divisions []struct {
			Name      string   `json:"name"`
			Districts []string `json:"districts"`
		} `json:"divisions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Divisions) != 2 {
		t.Fatalf("unexpected division count: got %d want 2", len(payload.Divisions))
	}
	if payload.Divisions[0].Name != "Dhaka" {
		t.Fatalf("config order not kept: first = %q", payload.Divisions[0].Name)
	}
}

func TestLocationsDistrictsUnknownDivision(t *testing.T) {
	h := newLocationsHandler()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("division", "Atlantis")
	req := httptest.NewRequest(http.MethodGet, "/v1/locations/Atlantis/districts", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.Districts(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNotFound)
	}
}
