package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
	mediasvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/media"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/dto"
	httperrors "github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/errors"
)

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	if err := r.ParseMultipartForm(mediasvc.MaxUploadLen); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "multipart form is required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "file field is required")
		return
	}
	defer file.Close()

	uploaded, err := h.service.Upload(r.Context(), identity.UserID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		if errors.Is(err, mediasvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "upload validation failed")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to upload media")
		return
	}

	httperrors.Write(w, http.StatusOK, mapMedia(uploaded))
}

func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	id := chi.URLParam(r, "id")
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, mediasvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "media id is required")
		case errors.Is(err, mediasvc.ErrMediaNotFound):
			httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: "NOT_FOUND", Message: "media not found"})
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load media")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, mapMedia(found))
}

func mapMedia(m mediasvc.Media) dto.MediaResponse {
	return dto.MediaResponse{
		ID:          m.ID,
		URL:         m.URL,
		ContentType: m.ContentType,
		CreatedAt:   m.CreatedAt,
	}
}
