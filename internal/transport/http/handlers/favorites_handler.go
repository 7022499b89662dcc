package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authsvc "github.com/bazarhat/backend/internal/services/auth"
	favsvc "github.com/bazarhat/backend/internal/services/favorites"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type FavoritesHandler struct {
	favorites *favsvc.Service
}

func NewFavoritesHandler(favoritesService *favsvc.Service) *FavoritesHandler {
	return &FavoritesHandler{favorites: favoritesService}
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, adID, ok := h.identityAndAd(w, r)
	if !ok {
		return
	}

	if err := h.favorites.Add(r.Context(), identity.UserID, adID); err != nil {
		handleFavoriteError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, adID, ok := h.identityAndAd(w, r)
	if !ok {
		return
	}

	if err := h.favorites.Remove(r.Context(), identity.UserID, adID); err != nil {
		handleFavoriteError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	favorites, err := h.favorites.List(r.Context(), identity.UserID, parsePage(r.URL.Query().Get("page")))
	if err != nil {
		handleFavoriteError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewFavoriteListResponse(favorites))
}

func (h *FavoritesHandler) SaveSearch(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.SaveSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	id, err := h.favorites.SaveSearch(r.Context(), identity.UserID, favsvc.SavedSearchInput{
		Name:  req.Name,
		Query: req.Query,
	})
	if err != nil {
		handleFavoriteError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *FavoritesHandler) ListSearches(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	searches, err := h.favorites.ListSearches(r.Context(), identity.UserID)
	if err != nil {
		handleFavoriteError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewSavedSearchListResponse(searches))
}

func (h *FavoritesHandler) DeleteSearch(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "INVALID_SEARCH_ID", "search id must be numeric")
		return
	}

	if err := h.favorites.DeleteSearch(r.Context(), id, identity.UserID); err != nil {
		handleFavoriteError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *FavoritesHandler) identityAndAd(w http.ResponseWriter, r *http.Request) (authsvc.Identity, uuid.UUID, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, uuid.Nil, false
	}

	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_AD_ID", "ad id must be a uuid")
		return authsvc.Identity{}, uuid.Nil, false
	}

	return identity, adID, true
}

func handleFavoriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, favsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, favsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "favorite target not found")
	case errors.Is(err, favsvc.ErrLimitReached):
		writeBadRequest(w, "SEARCH_LIMIT_REACHED", "saved search limit reached")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
