package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	usersvc "github.com/bazarhat/backend/internal/services/users"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type AdminUsersHandler struct {
	users *usersvc.Service
}

func NewAdminUsersHandler(usersService *usersvc.Service) *AdminUsersHandler {
	return &AdminUsersHandler{users: usersService}
}

func (h *AdminUsersHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := usersvc.SearchInput{
		Query: q.Get("q"),
		Page:  parsePage(q.Get("page")),
	}
	input.Blocked = parseBoolPtr(q.Get("blocked"))
	input.Deleted = parseBoolPtr(q.Get("deleted"))

	profiles, total, err := h.users.Search(r.Context(), input)
	if err != nil {
		handleUserError(w, err)
		return
	}

	out := make([]dto.ProfileReviewResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, dto.NewProfileReviewResponse(p))
	}
	httperrors.Write(w, http.StatusOK, dto.UserListResponse{
		Users: out,
		Total: total,
		Page:  input.Page,
	})
}

func (h *AdminUsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_USER_ID", "user id must be a uuid")
		return
	}

	profile, err := h.users.Get(r.Context(), userID)
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewProfileReviewResponse(profile))
}

func (h *AdminUsersHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkUsersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "INVALID_USER_ID", "every id must be a uuid")
			return
		}
		ids = append(ids, id)
	}

	result, err := h.users.BulkUpdate(r.Context(), usersvc.BulkInput{
		IDs:    ids,
		Action: usersvc.UserAction(req.Action),
		Status: enums.VerificationStatus(req.Status),
	})
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BulkResultResponse{Matched: result.Matched})
}

func handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usersvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, usersvc.ErrNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
