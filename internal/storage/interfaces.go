// Package storage defines blob storage backends for uploaded images.
// Content is addressed by its SHA-256 hash, so re-uploading the same cover
// or avatar never stores a second copy.
package storage

import (
	"context"
	"errors"
	"io"
)

// Storage errors.
var (
	// ErrBlobNotFound indicates no content exists for the given hash.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrInvalidHash indicates a malformed content hash.
	ErrInvalidHash = errors.New("invalid content hash")
)

// Backend defines the interface for blob storage backends.
// Implementations include the local filesystem and S3-compatible stores.
type Backend interface {
	// Store stores content from a reader and returns its SHA-256 hash
	// (64 hex characters). If the content already exists no new copy is made.
	Store(ctx context.Context, reader io.Reader) (contentHash string, size int64, err error)

	// Retrieve returns a stream of the content for a hash. The caller must
	// close the returned ReadCloser. Returns ErrBlobNotFound if absent.
	Retrieve(ctx context.Context, contentHash string) (io.ReadCloser, error)

	// Delete removes content by its hash. Returns ErrBlobNotFound if absent.
	Delete(ctx context.Context, contentHash string) error

	// Exists reports whether content with the given hash is stored.
	Exists(ctx context.Context, contentHash string) (bool, error)

	// GetSize returns the stored content size in bytes.
	// Returns ErrBlobNotFound if absent.
	GetSize(ctx context.Context, contentHash string) (int64, error)
}

// ValidateHash reports whether s is a well-formed SHA-256 hex hash.
// Backends call this before touching the underlying store so a crafted
// hash can never escape the blob namespace.
func ValidateHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
