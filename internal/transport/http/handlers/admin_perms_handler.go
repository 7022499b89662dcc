package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
	permsvc "github.com/bazarhat/backend/internal/services/perms"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type AdminPermsHandler struct {
	perms *permsvc.Service
}

func NewAdminPermsHandler(permsService *permsvc.Service) *AdminPermsHandler {
	return &AdminPermsHandler{perms: permsService}
}

func (h *AdminPermsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_USER_ID", "user id must be a uuid")
		return
	}

	roles, permissions, err := h.perms.List(r.Context(), userID)
	if err != nil {
		handlePermError(w, err)
		return
	}

	out := make([]string, 0, len(permissions))
	for _, p := range permissions {
		out = append(out, string(p))
	}
	httperrors.Write(w, http.StatusOK, dto.PermissionListResponse{
		Roles:       roles,
		Permissions: out,
	})
}

func (h *AdminPermsHandler) Grant(w http.ResponseWriter, r *http.Request) {
	h.permAction(w, r, h.perms.Grant)
}

func (h *AdminPermsHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	h.permAction(w, r, h.perms.Revoke)
}

func (h *AdminPermsHandler) Promote(w http.ResponseWriter, r *http.Request) {
	h.roleAction(w, r, h.perms.PromoteAdmin)
}

func (h *AdminPermsHandler) Demote(w http.ResponseWriter, r *http.Request) {
	h.roleAction(w, r, h.perms.DemoteAdmin)
}

func (h *AdminPermsHandler) permAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, actorID, userID uuid.UUID, perm enums.Permission) error) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_USER_ID", "user id must be a uuid")
		return
	}

	var req dto.PermissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := action(r.Context(), identity.UserID, userID, enums.Permission(req.Permission)); err != nil {
		handlePermError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AdminPermsHandler) roleAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, actorID, userID uuid.UUID) error) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_USER_ID", "user id must be a uuid")
		return
	}

	if err := action(r.Context(), identity.UserID, userID); err != nil {
		handlePermError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handlePermError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, permsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, permsvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "not allowed")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
