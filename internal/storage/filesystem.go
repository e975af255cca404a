package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/pkg/crypto"
)

// FilesystemBackend stores blobs under a local data directory using
// hash-derived sharded paths.
type FilesystemBackend struct {
	basePath string
	logger   zerolog.Logger
}

// NewFilesystemBackend creates a filesystem backend rooted at basePath.
// The directory is created if it does not exist.
func NewFilesystemBackend(basePath string, logger zerolog.Logger) (*FilesystemBackend, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FilesystemBackend{
		basePath: basePath,
		logger:   logger.With().Str("storage", "filesystem").Logger(),
	}, nil
}

// Store writes the content to a temporary file while hashing it, then moves
// the file into its hash-derived location. The write-then-rename keeps
// partially written blobs out of the store on failure.
func (b *FilesystemBackend) Store(ctx context.Context, reader io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp(b.basePath, "upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	hr := crypto.NewHashReader(reader)
	size, err := io.Copy(tmp, hr)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to write blob: %w", err)
	}

	contentHash := hr.SHA256()
	finalPath := computePath(b.basePath, contentHash)

	if _, err := os.Stat(finalPath); err == nil {
		// Already stored; the temp copy is discarded by the deferred remove.
		return contentHash, size, nil
	}

	if err := os.MkdirAll(shardDir(b.basePath, contentHash), 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create shard directory: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", 0, fmt.Errorf("failed to move blob into place: %w", err)
	}

	b.logger.Debug().
		Str("content_hash", contentHash).
		Int64("size", size).
		Msg("blob stored")

	return contentHash, size, nil
}

// Retrieve opens the blob for reading.
func (b *FilesystemBackend) Retrieve(ctx context.Context, contentHash string) (io.ReadCloser, error) {
	if !ValidateHash(contentHash) {
		return nil, ErrInvalidHash
	}

	f, err := os.Open(computePath(b.basePath, contentHash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

// Delete removes the blob and prunes its shard directories if empty.
func (b *FilesystemBackend) Delete(ctx context.Context, contentHash string) error {
	if !ValidateHash(contentHash) {
		return ErrInvalidHash
	}

	path := computePath(b.basePath, contentHash)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	// Best effort cleanup of now-empty shard directories.
	dir := filepath.Dir(path)
	for i := 0; i < shardLevels; i++ {
		if os.Remove(dir) != nil {
			break
		}
		dir = filepath.Dir(dir)
	}

	b.logger.Debug().Str("content_hash", contentHash).Msg("blob deleted")
	return nil
}

// Exists reports whether the blob is stored.
func (b *FilesystemBackend) Exists(ctx context.Context, contentHash string) (bool, error) {
	if !ValidateHash(contentHash) {
		return false, ErrInvalidHash
	}

	_, err := os.Stat(computePath(b.basePath, contentHash))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat blob: %w", err)
	}
	return true, nil
}

// GetSize returns the blob size in bytes.
func (b *FilesystemBackend) GetSize(ctx context.Context, contentHash string) (int64, error) {
	if !ValidateHash(contentHash) {
		return 0, ErrInvalidHash
	}

	info, err := os.Stat(computePath(b.basePath, contentHash))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrBlobNotFound
		}
		return 0, fmt.Errorf("failed to stat blob: %w", err)
	}
	return info.Size(), nil
}
