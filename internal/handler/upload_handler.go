package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/storage"
)

// UploadHandler handles cover-image and avatar uploads. Blobs are content
// addressed, so uploading the same image twice yields the same URL.
type UploadHandler struct {
	backend storage.Backend
	maxSize int64
	logger  zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(backend storage.Backend, maxSize int64, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		backend: backend,
		maxSize: maxSize,
		logger:  logger.With().Str("handler", "upload").Logger(),
	}
}

// RegisterProtectedRoutes registers the upload route behind the auth
// middleware.
func (h *UploadHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/api/uploads/covers", h.handleUpload)
}

// RegisterPublicRoutes registers the blob retrieval route. Covers are
// rendered in the public catalog, so retrieval needs no token.
func (h *UploadHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/uploads/{hash}", h.handleRetrieve)
}

type uploadResponse struct {
	Hash string `json:"hash"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

func (h *UploadHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)

	file, _, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, domain.ErrUploadTooLarge)
			return
		}
		writeError(w, service.ErrMissingFields)
		return
	}
	defer file.Close()

	hash, size, err := h.backend.Store(r.Context(), file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, domain.ErrUploadTooLarge)
			return
		}
		h.logger.Error().Err(err).Msg("failed to store upload")
		writeError(w, service.ErrInternalError)
		return
	}

	h.logger.Info().
		Str("content_hash", hash).
		Int64("size", size).
		Int64("user_id", identity.UserID).
		Msg("image uploaded")

	writeJSON(w, http.StatusCreated, uploadResponse{
		Hash: hash,
		URL:  fmt.Sprintf("/uploads/%s", hash),
		Size: size,
	})
}

func (h *UploadHandler) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	reader, err := h.backend.Retrieve(r.Context(), hash)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) || errors.Is(err, storage.ErrInvalidHash) {
			writeError(w, domain.ErrUploadNotFound)
			return
		}
		h.logger.Error().Err(err).Str("content_hash", hash).Msg("failed to retrieve upload")
		writeError(w, service.ErrInternalError)
		return
	}
	defer reader.Close()

	// Content-addressed blobs never change, so clients may cache forever.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Debug().Err(err).Str("content_hash", hash).Msg("upload stream interrupted")
	}
}
