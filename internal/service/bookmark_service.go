package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository"
)

// BookmarkService handles private per-user saved links. Every operation is
// scoped to the owning user; there is no shared bookmark view.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	logger       zerolog.Logger
}

// NewBookmarkService creates a new BookmarkService.
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, logger zerolog.Logger) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		logger:       logger.With().Str("service", "bookmark").Logger(),
	}
}

// CreateBookmarkInput contains the data needed to save a bookmark.
type CreateBookmarkInput struct {
	URL         string
	Description string
	Category    string
	UserID      int64
}

// Create saves a new bookmark for the caller.
func (s *BookmarkService) Create(ctx context.Context, input CreateBookmarkInput) (*domain.Bookmark, error) {
	input.URL = strings.TrimSpace(input.URL)
	if input.URL == "" {
		return nil, ErrMissingFields
	}
	if u, err := url.Parse(input.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidURL
	}

	bookmark := &domain.Bookmark{
		ID:          uuid.NewString(),
		URL:         input.URL,
		Description: input.Description,
		Category:    input.Category,
		UserID:      input.UserID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("failed to create bookmark")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("bookmark_id", bookmark.ID).
		Int64("user_id", bookmark.UserID).
		Msg("bookmark created")

	return bookmark, nil
}

// ListByUser returns all bookmarks owned by the caller, newest first.
func (s *BookmarkService) ListByUser(ctx context.Context, userID int64) ([]*domain.Bookmark, error) {
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list bookmarks")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return bookmarks, nil
}

// Get retrieves a single bookmark owned by the caller. The fetch runs before
// the ownership check so a missing bookmark reports not-found rather than
// forbidden.
func (s *BookmarkService) Get(ctx context.Context, id string, callerID int64) (*domain.Bookmark, error) {
	bookmark, err := s.bookmarkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrBookmarkNotFound
		}
		s.logger.Error().Err(err).Str("bookmark_id", id).Msg("failed to get bookmark")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := auth.Authorize(callerID, bookmark.UserID); err != nil {
		return nil, err
	}

	return bookmark, nil
}

// UpdateBookmarkInput contains the editable bookmark fields. Nil fields are
// left unchanged.
type UpdateBookmarkInput struct {
	ID          string
	CallerID    int64
	URL         *string
	Description *string
	Category    *string
}

// Update modifies a bookmark owned by the caller.
func (s *BookmarkService) Update(ctx context.Context, input UpdateBookmarkInput) (*domain.Bookmark, error) {
	bookmark, err := s.Get(ctx, input.ID, input.CallerID)
	if err != nil {
		return nil, err
	}

	if input.URL != nil {
		link := strings.TrimSpace(*input.URL)
		if link == "" {
			return nil, ErrMissingFields
		}
		if u, err := url.Parse(link); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, ErrInvalidURL
		}
		bookmark.URL = link
	}
	if input.Description != nil {
		bookmark.Description = *input.Description
	}
	if input.Category != nil {
		bookmark.Category = *input.Category
	}

	if err := s.bookmarkRepo.Update(ctx, bookmark); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrBookmarkNotFound
		}
		s.logger.Error().Err(err).Str("bookmark_id", bookmark.ID).Msg("failed to update bookmark")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("bookmark_id", bookmark.ID).Msg("bookmark updated")
	return bookmark, nil
}

// Delete removes a bookmark owned by the caller.
func (s *BookmarkService) Delete(ctx context.Context, id string, callerID int64) error {
	if _, err := s.Get(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.bookmarkRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrBookmarkNotFound
		}
		s.logger.Error().Err(err).Str("bookmark_id", id).Msg("failed to delete bookmark")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("bookmark_id", id).Int64("caller_id", callerID).Msg("bookmark deleted")
	return nil
}
