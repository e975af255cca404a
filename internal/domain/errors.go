// Package domain contains the core business entities for ReadHaven.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username/email exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserInactive indicates the user account is disabled.
	ErrUserInactive = errors.New("user account is inactive")

	// ErrInvalidCredentials indicates authentication failed.
	// Deliberately shared between "no such user" and "wrong password" so the
	// API never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ===========================================
	// Book Errors
	// ===========================================

	// ErrBookNotFound indicates the requested book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ===========================================
	// Bookmark Errors
	// ===========================================

	// ErrBookmarkNotFound indicates the requested bookmark does not exist.
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// ===========================================
	// Authentication/Authorization Errors
	// ===========================================

	// ErrNoToken indicates the request carried no bearer token.
	ErrNoToken = errors.New("missing authentication token")

	// ErrInvalidToken indicates the bearer token failed verification.
	// Malformed, badly signed, and expired tokens all collapse to this
	// error at the API boundary.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrForbidden indicates the authenticated user does not own the
	// resource, or lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ===========================================
	// Upload Errors
	// ===========================================

	// ErrUploadNotFound indicates the requested stored image does not exist.
	ErrUploadNotFound = errors.New("upload not found")

	// ErrUploadTooLarge indicates the uploaded image exceeds the size limit.
	ErrUploadTooLarge = errors.New("upload exceeds maximum size")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., book ID, username).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}
