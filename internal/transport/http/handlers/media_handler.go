package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/model"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
	"github.com/bazarhat/backend/internal/services/media"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

const maxUploadBytes = 32 << 20

type adImageLister interface {
	ListByAd(ctx context.Context, adID uuid.UUID) ([]model.AdImage, error)
}

type MediaHandler struct {
	media  *media.Service
	images adImageLister
}

func NewMediaHandler(mediaService *media.Service, images adImageLister) *MediaHandler {
	return &MediaHandler{media: mediaService, images: images}
}

// UploadAdImages accepts multipart files under "images". When ad_id names an
// existing ad the per-ad image cap counts what is already stored; otherwise a
// draft id is generated and the client passes the returned keys on submit.
func (h *MediaHandler) UploadAdImages(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.media == nil {
		writeInternal(w, "MEDIA_UNAVAILABLE", "media storage is unavailable")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid multipart form")
		return
	}

	adID := uuid.Nil
	if raw := r.FormValue("ad_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "INVALID_AD_ID", "ad_id must be a uuid")
			return
		}
		adID = parsed
	}

	existing := 0
	if adID == uuid.Nil {
		adID = uuid.New()
	} else if h.images != nil {
		stored, err := h.images.ListByAd(r.Context(), adID)
		if err != nil {
			writeInternal(w, "INTERNAL_ERROR", "failed to load ad images")
			return
		}
		existing = len(stored)
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeBadRequest(w, "INVALID_REQUEST", "at least one image is required")
		return
	}

	keys := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			writeBadRequest(w, "INVALID_REQUEST", "unreadable image upload")
			return
		}

		key, err := h.media.UploadAdImage(r.Context(), adID, existing+len(keys), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
		file.Close()
		if err != nil {
			switch {
			case errors.Is(err, media.ErrImageLimitReached):
				writeBadRequest(w, "IMAGE_LIMIT_REACHED", "too many images for this ad")
			case errors.Is(err, media.ErrValidation):
				writeBadRequest(w, "VALIDATION_ERROR", "image upload is invalid")
			default:
				writeInternal(w, "UPLOAD_FAILED", "failed to store image")
			}
			return
		}
		keys = append(keys, key)
	}

	httperrors.Write(w, http.StatusOK, dto.UploadImagesResponse{
		AdRef: adID.String(),
		Keys:  keys,
	})
}
