package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
)

// UserHandler handles the self-service profile endpoints.
type UserHandler struct {
	userService *service.UserService
	logger      zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.With().Str("handler", "user").Logger(),
	}
}

// RegisterRoutes registers the profile routes. All require a bearer token.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/users/profile", h.handleGetProfile)
	r.Put("/api/users/profile", h.handleUpdateProfile)
}

func (h *UserHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

type updateProfileRequest struct {
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Bio      *string          `json:"bio"`
	Avatar   *string          `json:"avatar"`
	Settings *domain.Settings `json:"settings"`
}

func (h *UserHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), service.UpdateProfileInput{
		UserID:   identity.UserID,
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Settings: req.Settings,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}
