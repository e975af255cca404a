package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
)

// BookmarkHandler handles the private saved-link endpoints. Bookmarks are
// owner-only for both reads and writes, unlike the public book catalog.
type BookmarkHandler struct {
	bookmarkService *service.BookmarkService
	logger          zerolog.Logger
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(bookmarkService *service.BookmarkService, logger zerolog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		logger:          logger.With().Str("handler", "bookmark").Logger(),
	}
}

// RegisterRoutes registers the bookmark routes. All require a bearer token.
// The /api/urls prefix matches the frontend's resource name.
func (h *BookmarkHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/urls", h.handleList)
	r.Post("/api/urls", h.handleCreate)
	r.Get("/api/urls/{id}", h.handleGet)
	r.Put("/api/urls/{id}", h.handleUpdate)
	r.Delete("/api/urls/{id}", h.handleDelete)
}

func (h *BookmarkHandler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	bookmarks, err := h.bookmarkService.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	if bookmarks == nil {
		bookmarks = []*domain.Bookmark{}
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

type createBookmarkRequest struct {
	URL         string `json:"urlLink"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *BookmarkHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req createBookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	bookmark, err := h.bookmarkService.Create(r.Context(), service.CreateBookmarkInput{
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		UserID:      identity.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookmark)
}

func (h *BookmarkHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	bookmark, err := h.bookmarkService.Get(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmark)
}

type updateBookmarkRequest struct {
	URL         *string `json:"urlLink"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

func (h *BookmarkHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateBookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	bookmark, err := h.bookmarkService.Update(r.Context(), service.UpdateBookmarkInput{
		ID:          chi.URLParam(r, "id"),
		CallerID:    identity.UserID,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmark)
}

func (h *BookmarkHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.bookmarkService.Delete(r.Context(), chi.URLParam(r, "id"), identity.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "bookmark deleted"})
}
