package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	catsvc "github.com/bazarhat/backend/internal/services/categories"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type AdminCategoriesHandler struct {
	categories *catsvc.Service
}

func NewAdminCategoriesHandler(categoriesService *catsvc.Service) *AdminCategoriesHandler {
	return &AdminCategoriesHandler{categories: categoriesService}
}

// List returns the full tree including inactive rows, unlike the public list.
func (h *AdminCategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListAll(r.Context())
	if err != nil {
		handleCategoryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewCategoryResponses(categories))
}

func (h *AdminCategoriesHandler) Subcategories(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "INVALID_CATEGORY_ID", "category id must be numeric")
		return
	}

	subs, err := h.categories.Subcategories(r.Context(), id, false)
	if err != nil {
		handleCategoryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewSubcategoryResponses(subs))
}

func (h *AdminCategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	id, err := h.categories.Create(r.Context(), catsvc.CategoryInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		handleCategoryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *AdminCategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "INVALID_CATEGORY_ID", "category id must be numeric")
		return
	}

	var req dto.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	err = h.categories.Update(r.Context(), id, catsvc.CategoryInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		handleCategoryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AdminCategoriesHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req dto.SubcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	id, err := h.categories.CreateSubcategory(r.Context(), catsvc.SubcategoryInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Slug:       req.Slug,
		SortOrder:  req.SortOrder,
		IsActive:   req.IsActive,
	})
	if err != nil {
		handleCategoryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.IDResponse{ID: id})
}
