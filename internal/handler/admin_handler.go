package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
)

// AdminHandler handles the admin-only endpoints. The routes are wrapped in
// auth.RequireAdmin, so every request here already carries a role=admin token.
type AdminHandler struct {
	statsService *service.StatsService
	userService  *service.UserService
	logger       zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(statsService *service.StatsService, userService *service.UserService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		statsService: statsService,
		userService:  userService,
		logger:       logger.With().Str("handler", "admin").Logger(),
	}
}

// RegisterRoutes registers the admin routes on an admin-guarded router.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/admin/stats", h.handleStats)
	r.Get("/api/admin/users", h.handleListUsers)
	r.Put("/api/admin/users/{id}/active", h.handleSetUserActive)
}

func (h *AdminHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Collect(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type listUsersResponse struct {
	Users      []userResponse `json:"users"`
	TotalCount int64          `json:"totalCount"`
}

func (h *AdminHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	output, err := h.userService.List(r.Context(), service.ListUsersInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := listUsersResponse{
		Users:      make([]userResponse, 0, len(output.Users)),
		TotalCount: output.TotalCount,
	}
	for _, user := range output.Users {
		resp.Users = append(resp.Users, newUserResponse(user))
	}

	writeJSON(w, http.StatusOK, resp)
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

func (h *AdminHandler) handleSetUserActive(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	var req setActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, service.ErrMissingFields)
		return
	}

	if err := h.userService.SetActive(r.Context(), userID, req.IsActive); err != nil {
		writeError(w, err)
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	h.logger.Info().
		Int64("user_id", userID).
		Bool("is_active", req.IsActive).
		Int64("admin_id", identity.UserID).
		Msg("user active status changed by admin")

	writeJSON(w, http.StatusOK, map[string]string{"message": "user updated"})
}
