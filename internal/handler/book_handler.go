package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
)

// BookHandler handles the book catalog endpoints. Reads are public; writes
// require a bearer token and, for existing books, ownership.
type BookHandler struct {
	bookService *service.BookService
	logger      zerolog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bookService *service.BookService, logger zerolog.Logger) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		logger:      logger.With().Str("handler", "book").Logger(),
	}
}

// RegisterPublicRoutes registers the routes that need no token.
func (h *BookHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/api/books", h.handleList)
	r.Get("/api/books/{id}", h.handleGet)
}

// RegisterProtectedRoutes registers the routes behind the auth middleware.
func (h *BookHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/api/books", h.handleCreate)
	r.Put("/api/books/{id}", h.handleUpdate)
	r.Delete("/api/books/{id}", h.handleDelete)
}

func (h *BookHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sortBy := query.Get("sortBy")
	descending := false
	if strings.HasPrefix(sortBy, "-") {
		sortBy = strings.TrimPrefix(sortBy, "-")
		descending = true
	}

	books, err := h.bookService.List(r.Context(), service.ListBooksInput{
		Genre:      query.Get("genre"),
		SortBy:     sortBy,
		Descending: descending,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if books == nil {
		books = []*domain.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

type createBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	CoverImage  string  `json:"coverImage"`
}

func (h *BookHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req createBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	// Ownership comes from the verified token, never from the body.
	book, err := h.bookService.Create(r.Context(), service.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Rating:      req.Rating,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		UploadedBy:  identity.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

type updateBookRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Genre       *string  `json:"genre"`
	Rating      *float64 `json:"rating"`
	Description *string  `json:"description"`
	CoverImage  *string  `json:"coverImage"`
}

func (h *BookHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	book, err := h.bookService.Update(r.Context(), service.UpdateBookInput{
		ID:          chi.URLParam(r, "id"),
		CallerID:    identity.UserID,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Rating:      req.Rating,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.bookService.Delete(r.Context(), chi.URLParam(r, "id"), identity.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "book deleted"})
}
