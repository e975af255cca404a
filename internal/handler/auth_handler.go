package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/limiter"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/metrics"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userService *service.UserService
	codec       *auth.Codec
	adminCreds  auth.AdminCredentials
	limiter     limiter.AttemptLimiter
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// AuthHandlerConfig contains the dependencies for AuthHandler.
type AuthHandlerConfig struct {
	UserService *service.UserService
	Codec       *auth.Codec
	AdminCreds  auth.AdminCredentials
	Limiter     limiter.AttemptLimiter
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	l := cfg.Limiter
	if l == nil {
		l = limiter.NewNoOpLimiter()
	}
	return &AuthHandler{
		userService: cfg.UserService,
		codec:       cfg.Codec,
		adminCreds:  cfg.AdminCreds,
		limiter:     l,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger.With().Str("handler", "auth").Logger(),
	}
}

// RegisterRoutes registers the auth routes. None of them require a token.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/auth/register", h.handleRegister)
	r.Post("/api/auth/login", h.handleLogin)
	r.Post("/api/auth/admin/login", h.handleAdminLogin)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newUserResponse(user))
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// identifier returns the login identifier, preferring username.
func (req loginRequest) identifier() string {
	if id := strings.TrimSpace(req.Username); id != "" {
		return id
	}
	return strings.TrimSpace(req.Email)
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	identifier := req.identifier()
	if identifier == "" || req.Password == "" {
		writeError(w, service.ErrMissingFields)
		return
	}

	if !h.allowAttempt(r, identifier) {
		writeError(w, service.ErrTooManyAttempts)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), identifier, req.Password)
	if err != nil {
		h.recordFailure(r, identifier)
		writeError(w, err)
		return
	}

	token, err := h.codec.Issue(user.ID, auth.RoleUser)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		writeError(w, service.ErrInternalError)
		return
	}

	h.resetAttempts(r, identifier)
	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// handleAdminLogin checks the fixed configured credential pair, never the
// user store. A role=admin token is minted only on an exact match.
func (h *AuthHandler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	key := "admin:" + strings.TrimSpace(req.Username)
	if !h.allowAttempt(r, key) {
		writeError(w, service.ErrTooManyAttempts)
		return
	}

	if err := h.adminCreds.Verify(req.Username, req.Password); err != nil {
		h.recordFailure(r, key)
		h.logger.Warn().Str("username", req.Username).Msg("admin login rejected")
		writeError(w, err)
		return
	}

	token, err := h.codec.Issue(auth.AdminUserID, auth.RoleAdmin)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue admin token")
		writeError(w, service.ErrInternalError)
		return
	}

	h.resetAttempts(r, key)
	h.logger.Info().Str("username", req.Username).Msg("admin logged in")
	writeJSON(w, http.StatusOK, adminLoginResponse{
		Token: token,
		Role:  string(auth.RoleAdmin),
	})
}

// allowAttempt consults the limiter; limiter failures fail open so a Redis
// outage cannot lock everyone out.
func (h *AuthHandler) allowAttempt(r *http.Request, key string) bool {
	allowed, err := h.limiter.Allow(r.Context(), key)
	if err != nil {
		h.logger.Warn().Err(err).Msg("attempt limiter unavailable")
		return true
	}
	if !allowed && h.metrics != nil {
		h.metrics.IncLoginThrottled()
	}
	return allowed
}

func (h *AuthHandler) recordFailure(r *http.Request, key string) {
	if h.metrics != nil {
		h.metrics.IncAuthFailure()
	}
	if err := h.limiter.RecordFailure(r.Context(), key); err != nil {
		h.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (h *AuthHandler) resetAttempts(r *http.Request, key string) {
	if err := h.limiter.Reset(r.Context(), key); err != nil {
		h.logger.Warn().Err(err).Msg("failed to reset login attempts")
	}
}
