// Package handler provides the HTTP handlers for the ReadHaven API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps a service or domain error to its HTTP status and writes a
// minimal JSON message. Unknown errors become opaque 500s so internal detail
// never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: message})
}

// statusForError resolves the HTTP status for an error. Not-found checks run
// before forbidden so an absent resource never leaks whether it would have
// been forbidden.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrBookmarkNotFound),
		errors.Is(err, domain.ErrUploadNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserInactive),
		errors.Is(err, domain.ErrNoToken),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrInvalidRating):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// userResponse is the client-visible view of a user. The password hash never
// leaves the server.
type userResponse struct {
	ID           int64               `json:"id"`
	Username     string              `json:"username"`
	Email        string              `json:"email"`
	Bio          string              `json:"bio"`
	Avatar       string              `json:"avatar"`
	ReadingStats domain.ReadingStats `json:"readingStats"`
	Settings     domain.Settings     `json:"settings"`
	IsActive     bool                `json:"isActive"`
}

// newUserResponse strips server-only fields from a user.
func newUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Bio:          user.Bio,
		Avatar:       user.Avatar,
		ReadingStats: user.ReadingStats,
		Settings:     user.Settings,
		IsActive:     user.IsActive,
	}
}
