package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	adsvc "github.com/bazarhat/backend/internal/services/ads"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
	"github.com/bazarhat/backend/internal/services/media"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type AdsHandler struct {
	ads   *adsvc.Service
	media *media.Service
}

func NewAdsHandler(adsService *adsvc.Service, mediaService *media.Service) *AdsHandler {
	return &AdsHandler{ads: adsService, media: mediaService}
}

func (h *AdsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.SubmitAdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	ad, err := h.ads.Submit(r.Context(), identity.UserID, adsvc.SubmitInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		CustomFields:  req.CustomFields,
		Price:         req.Price,
		PriceType:     enums.PriceType(req.PriceType),
		MRP:           req.MRP,
		Discount:      req.Discount,
		AdType:        req.AdType,
		ProductTypes:  req.ProductTypes,
		Features:      req.Features,
		Division:      req.Division,
		District:      req.District,
		Area:          req.Area,
		ImageKeys:     req.ImageKeys,
	})
	if err != nil {
		handleAdError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewAdResponse(ad))
}

func (h *AdsHandler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := adsvc.BrowseInput{
		Division: q.Get("division"),
		District: q.Get("district"),
		Text:     q.Get("q"),
		Page:     parsePage(q.Get("page")),
	}
	input.CategoryID = parseInt64Ptr(q.Get("category_id"))
	input.SubcategoryID = parseInt64Ptr(q.Get("subcategory_id"))
	input.PriceMin = parseFloatPtr(q.Get("price_min"))
	input.PriceMax = parseFloatPtr(q.Get("price_max"))

	ads, total, err := h.ads.Browse(r.Context(), input)
	if err != nil {
		handleAdError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AdListResponse{
		Ads:   dto.NewAdResponses(ads),
		Total: total,
		Page:  input.Page,
	})
}

func (h *AdsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	ad, images, err := h.ads.Detail(r.Context(), ref)
	if err != nil {
		handleAdError(w, err)
		return
	}

	resp := dto.NewAdResponse(ad)
	resp.ImageURLs = h.signImages(r, images)

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *AdsHandler) MyAds(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	page := parsePage(r.URL.Query().Get("page"))
	ads, err := h.ads.ListByOwner(r.Context(), identity.UserID, page)
	if err != nil {
		handleAdError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AdListResponse{
		Ads:   dto.NewAdResponses(ads),
		Total: len(ads),
		Page:  page,
	})
}

func (h *AdsHandler) Edit(w http.ResponseWriter, r *http.Request) {
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

	var req dto.EditAdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := h.ads.Edit(r.Context(), adID, identity.UserID, adsvc.EditInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		CustomFields:  req.CustomFields,
		Price:         req.Price,
		PriceType:     enums.PriceType(req.PriceType),
		MRP:           req.MRP,
		Discount:      req.Discount,
		AdType:        req.AdType,
		ProductTypes:  req.ProductTypes,
		Features:      req.Features,
		Division:      req.Division,
		District:      req.District,
		Area:          req.Area,
	})
	if err != nil {
		handleAdError(w, err)
		return
	}

	resp := dto.EditAdResponse{Direct: result.Direct}
	if result.RequestID != uuid.Nil {
		resp.RequestID = result.RequestID.String()
	}
	httperrors.Write(w, http.StatusOK, resp)
}

func (h *AdsHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	h.ownerAction(w, r, func(adID, ownerID uuid.UUID) error {
		return h.ads.MarkSold(r.Context(), adID, ownerID)
	})
}

func (h *AdsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.ownerAction(w, r, func(adID, ownerID uuid.UUID) error {
		return h.ads.SetDeactivated(r.Context(), adID, ownerID, true)
	})
}

func (h *AdsHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.ownerAction(w, r, func(adID, ownerID uuid.UUID) error {
		return h.ads.SetDeactivated(r.Context(), adID, ownerID, false)
	})
}

func (h *AdsHandler) ownerAction(w http.ResponseWriter, r *http.Request, action func(adID, ownerID uuid.UUID) error) {
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

	if err := action(adID, identity.UserID); err != nil {
		handleAdError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AdsHandler) signImages(r *http.Request, images []model.AdImage) []string {
	if h.media == nil || len(images) == 0 {
		return nil
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := h.media.SignAdImage(r.Context(), img.ObjectKey)
		if err != nil {
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func handleAdError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, adsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, adsvc.ErrNotFound):
		writeNotFound(w, "AD_NOT_FOUND", "ad not found")
	case errors.Is(err, adsvc.ErrNotOwner):
		writeForbidden(w, "NOT_OWNER", "only the ad owner may do this")
	default:
		if rl, ok := adsvc.IsRateLimited(err); ok {
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "RATE_LIMITED",
				Message:       "too many ads posted, slow down",
				RetryAfterSec: rl.RetryAfter(),
			})
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseInt64Ptr(raw string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatPtr(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
