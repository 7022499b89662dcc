package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReportReasonsListsTaxonomy(t *testing.T) {
	h := NewReportsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/report-reasons", nil)
	rr := httptest.NewRecorder()
	h.Reasons(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	var payload []struct {
		Code  string `json:"code"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("expected at least one report reason")
	}

	seen := map[string]bool{}
	for _, reason := range payload {
		if reason.Label == "" {
			t.Fatalf("reason %q has empty label", reason.Code)
		}
		seen[reason.Code] = true
	}
	for _, code := range []string{"scam", "other"} {
		if !seen[code] {
			t.Fatalf("missing reason code %q", code)
		}
	}
}

func TestReportCreateWithoutIdentity(t *testing.T) {
	h := NewReportsHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/ads/abc/report", nil)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}
