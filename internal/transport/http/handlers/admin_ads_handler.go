package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
	searchsvc "github.com/bazarhat/backend/internal/services/search"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

// AdminAdsHandler serves the admin ads table: filtered search plus bulk
// actions over a selection.
type AdminAdsHandler struct {
	search *searchsvc.Service
}

func NewAdminAdsHandler(searchService *searchsvc.Service) *AdminAdsHandler {
	return &AdminAdsHandler{search: searchService}
}

func (h *AdminAdsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := searchsvc.Filters{
		Query:           q.Get("q"),
		Location:        q.Get("location"),
		RejectionReason: q.Get("rejection_reason"),
		AdType:          q.Get("ad_type"),
		Page:            parsePage(q.Get("page")),
	}
	filters.CategoryID = parseInt64Ptr(q.Get("category_id"))
	filters.SubcategoryID = parseInt64Ptr(q.Get("subcategory_id"))
	filters.NeedsVerification = parseBoolPtr(q.Get("needs_verification"))
	filters.IsDeactivated = parseBoolPtr(q.Get("is_deactivated"))
	filters.IsArchived = parseBoolPtr(q.Get("is_archived"))
	filters.CreatedFrom = parseTimePtr(q.Get("created_from"))
	filters.CreatedTo = parseTimePtr(q.Get("created_to"))

	if raw := q.Get("reviewed_by"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "INVALID_REVIEWER_ID", "reviewed_by must be a uuid")
			return
		}
		filters.ReviewedBy = &id
	}
	for _, raw := range splitCSV(q.Get("statuses")) {
		filters.Statuses = append(filters.Statuses, enums.AdStatus(raw))
	}
	filters.ProductTypes = splitCSV(q.Get("product_types"))
	filters.Features = splitCSV(q.Get("features"))

	result, err := h.search.SearchAds(r.Context(), filters)
	if err != nil {
		handleSearchError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AdListResponse{
		Ads:   dto.NewAdResponses(result.Ads),
		Total: result.Total,
		Page:  result.Page,
	})
}

func (h *AdminAdsHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.BulkAdsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "INVALID_AD_ID", "every id must be a uuid")
			return
		}
		ids = append(ids, id)
	}

	result, err := h.search.BulkUpdateAds(r.Context(), ids, searchsvc.BulkAction(req.Action), req.Reasons, identity.UserID)
	if err != nil {
		handleSearchError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BulkResultResponse{Matched: result.Matched})
}

func handleSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, searchsvc.ErrValidation) {
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
		return
	}
	writeInternal(w, "INTERNAL_ERROR", "internal server error")
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBoolPtr(raw string) *bool {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseTimePtr(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
