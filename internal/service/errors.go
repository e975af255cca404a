// Package service provides business logic services for ReadHaven.
package service

import "errors"

// Common service errors.
var (
	// Validation errors
	ErrInvalidUsername = errors.New("invalid username: must be 3-255 characters")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPassword = errors.New("invalid password: must not be empty")
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidRating   = errors.New("rating must be between 0 and 5")

	// Throttling errors
	ErrTooManyAttempts = errors.New("too many failed login attempts")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
