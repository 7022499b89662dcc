package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/bazarhat/backend/internal/services/auth"
	"github.com/bazarhat/backend/internal/services/media"
	"github.com/bazarhat/backend/internal/services/profiles"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

const maxAvatarBytes = 5 << 20

type MeHandler struct {
	profiles *profiles.Service
	media    *media.Service
}

func NewMeHandler(profilesService *profiles.Service, mediaService *media.Service) *MeHandler {
	return &MeHandler{profiles: profilesService, media: mediaService}
}

func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	profile, avatarURL, err := h.profiles.Me(r.Context(), identity.UserID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewMeResponse(profile, avatarURL))
}

func (h *MeHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.UpdateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	profile, err := h.profiles.Update(r.Context(), identity.UserID, profiles.UpdateInput{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		AltPhone:    req.AltPhone,
		SellerType:  req.SellerType,
		ShowPhone:   req.ShowPhone,
	})
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewMeResponse(profile, ""))
}

func (h *MeHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.media == nil {
		writeInternal(w, "MEDIA_UNAVAILABLE", "media storage is unavailable")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "avatar file is required")
		return
	}
	defer file.Close()

	key, err := h.media.UploadAvatar(r.Context(), identity.UserID, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		if errors.Is(err, media.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "avatar upload is invalid")
			return
		}
		writeInternal(w, "UPLOAD_FAILED", "failed to store avatar")
		return
	}

	if err := h.profiles.SetAvatar(r.Context(), identity.UserID, key); err != nil {
		handleProfileError(w, err)
		return
	}

	url, err := h.media.SignAvatar(r.Context(), key)
	if err != nil {
		writeInternal(w, "SIGN_FAILED", "failed to sign avatar url")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AvatarResponse{AvatarURL: url})
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profiles.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, profiles.ErrNotFound):
		writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
