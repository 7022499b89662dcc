package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	catsvc "github.com/bazarhat/backend/internal/services/categories"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type CategoriesHandler struct {
	categories *catsvc.Service
}

func NewCategoriesHandler(categoriesService *catsvc.Service) *CategoriesHandler {
	return &CategoriesHandler{categories: categoriesService}
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListActive(r.Context())
	if err != nil {
		handleCategoryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewCategoryResponses(categories))
}

func (h *CategoriesHandler) Subcategories(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "INVALID_CATEGORY_ID", "category id must be numeric")
		return
	}

	subs, err := h.categories.Subcategories(r.Context(), id, true)
	if err != nil {
		handleCategoryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewSubcategoryResponses(subs))
}

func handleCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, catsvc.ErrNotFound):
		writeNotFound(w, "CATEGORY_NOT_FOUND", "category not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
