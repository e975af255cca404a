package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository"
)

// BookService handles catalog reads and owner-scoped writes.
type BookService struct {
	bookRepo repository.BookRepository
	logger   zerolog.Logger
}

// NewBookService creates a new BookService.
func NewBookService(bookRepo repository.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		logger:   logger.With().Str("service", "book").Logger(),
	}
}

// ListBooksInput contains the filter and sort options for the catalog.
type ListBooksInput struct {
	Genre      string
	SortBy     string
	Descending bool
}

// List returns the catalog, optionally filtered by genre and sorted. The
// catalog is readable by any authenticated caller regardless of ownership.
func (s *BookService) List(ctx context.Context, input ListBooksInput) ([]*domain.Book, error) {
	books, err := s.bookRepo.List(ctx, repository.BookListOptions{
		Genre:      input.Genre,
		SortBy:     input.SortBy,
		Descending: input.Descending,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list books")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return books, nil
}

// Get retrieves a single book by ID.
func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrBookNotFound
		}
		s.logger.Error().Err(err).Str("book_id", id).Msg("failed to get book")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return book, nil
}

// CreateBookInput contains the data needed to add a book to the catalog.
type CreateBookInput struct {
	Title       string
	Author      string
	Genre       string
	Rating      float64
	Description string
	CoverImage  string
	UploadedBy  int64
}

// Create adds a book to the catalog, owned by the uploading user. New books
// are flagged as new arrivals until edited.
func (s *BookService) Create(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)

	if input.Title == "" || input.Author == "" || input.Genre == "" {
		return nil, ErrMissingFields
	}
	if input.Rating < 0 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	book := &domain.Book{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Author:      input.Author,
		Genre:       input.Genre,
		Rating:      input.Rating,
		IsNew:       true,
		Description: input.Description,
		CoverImage:  input.CoverImage,
		UploadedBy:  input.UploadedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create book")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("book_id", book.ID).
		Str("title", book.Title).
		Int64("uploaded_by", book.UploadedBy).
		Msg("book created")

	return book, nil
}

// UpdateBookInput contains the editable book fields. Nil fields are left
// unchanged.
type UpdateBookInput struct {
	ID          string
	CallerID    int64
	Title       *string
	Author      *string
	Genre       *string
	Rating      *float64
	Description *string
	CoverImage  *string
}

// Update modifies a book owned by the caller. The book is fetched before the
// ownership check so a missing book reports not-found rather than forbidden.
func (s *BookService) Update(ctx context.Context, input UpdateBookInput) (*domain.Book, error) {
	book, err := s.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(input.CallerID, book.UploadedBy); err != nil {
		s.logger.Debug().
			Str("book_id", book.ID).
			Int64("caller_id", input.CallerID).
			Int64("owner_id", book.UploadedBy).
			Msg("book update denied")
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrMissingFields
		}
		book.Title = title
	}
	if input.Author != nil {
		author := strings.TrimSpace(*input.Author)
		if author == "" {
			return nil, ErrMissingFields
		}
		book.Author = author
	}
	if input.Genre != nil {
		book.Genre = *input.Genre
	}
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			return nil, ErrInvalidRating
		}
		book.Rating = *input.Rating
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.CoverImage != nil {
		book.CoverImage = *input.CoverImage
	}
	book.IsNew = false

	if err := s.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrBookNotFound
		}
		s.logger.Error().Err(err).Str("book_id", book.ID).Msg("failed to update book")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("book_id", book.ID).Msg("book updated")
	return book, nil
}

// Delete removes a book owned by the caller. Same ordering as Update: the
// existence check runs before the ownership check.
func (s *BookService) Delete(ctx context.Context, id string, callerID int64) error {
	book, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Authorize(callerID, book.UploadedBy); err != nil {
		s.logger.Debug().
			Str("book_id", book.ID).
			Int64("caller_id", callerID).
			Int64("owner_id", book.UploadedBy).
			Msg("book delete denied")
		return err
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrBookNotFound
		}
		s.logger.Error().Err(err).Str("book_id", id).Msg("failed to delete book")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("book_id", id).Int64("caller_id", callerID).Msg("book deleted")
	return nil
}
