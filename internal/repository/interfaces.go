// Package repository defines data access interfaces for ReadHaven.
// These interfaces abstract database operations, allowing for different implementations
// (SQLite, PostgreSQL, in-memory for testing) while keeping the service layer clean.
package repository

import (
	"context"
	"time"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user. Returns domain.ErrUserAlreadyExists when the
	// username or email collides with an existing account; concurrent
	// registrations are serialized by the store's unique constraints.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *domain.User) error

	// List returns all users with pagination.
	List(ctx context.Context, opts ListOptions) (*ListResult[domain.User], error)

	// ExistsByUsername checks whether a username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks whether an email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)

	// CountSince returns the number of users created at or after t.
	CountSince(ctx context.Context, t time.Time) (int64, error)
}

// =============================================================================
// Book Repository
// =============================================================================

// BookListOptions contains filter and sort options for the public catalog.
type BookListOptions struct {
	// Genre filters by exact genre when non-empty.
	Genre string

	// SortBy orders results by one of the whitelisted columns
	// (title, author, rating, createdAt). Empty means insertion order.
	SortBy string

	// Descending reverses the sort order.
	Descending bool
}

// BookRepository defines the interface for book data access.
type BookRepository interface {
	// Create creates a new book.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by ID.
	GetByID(ctx context.Context, id string) (*domain.Book, error)

	// List returns books matching the options.
	List(ctx context.Context, opts BookListOptions) ([]*domain.Book, error)

	// Update updates an existing book.
	Update(ctx context.Context, book *domain.Book) error

	// Delete deletes a book by ID.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of books.
	Count(ctx context.Context) (int64, error)

	// CountByGenre returns the number of books per genre.
	CountByGenre(ctx context.Context) (map[string]int64, error)
}

// =============================================================================
// Bookmark Repository
// =============================================================================

// BookmarkRepository defines the interface for bookmark data access.
type BookmarkRepository interface {
	// Create creates a new bookmark.
	Create(ctx context.Context, bookmark *domain.Bookmark) error

	// GetByID retrieves a bookmark by ID.
	GetByID(ctx context.Context, id string) (*domain.Bookmark, error)

	// ListByUser returns the bookmarks owned by a user, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Bookmark, error)

	// Update updates an existing bookmark.
	Update(ctx context.Context, bookmark *domain.Bookmark) error

	// Delete deletes a bookmark by ID.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of bookmarks.
	Count(ctx context.Context) (int64, error)
}

// =============================================================================
// Pagination
// =============================================================================

// ListOptions contains common pagination options.
type ListOptions struct {
	// Offset is the number of records to skip.
	Offset int

	// Limit is the maximum number of records to return.
	Limit int

	// OrderBy specifies the sort order.
	OrderBy string

	// Descending specifies descending order if true.
	Descending bool
}

// ListResult is a generic paginated list result.
type ListResult[T any] struct {
	// Items is the list of items.
	Items []*T

	// Total is the total number of items (without pagination).
	Total int64

	// Offset is the current offset.
	Offset int

	// Limit is the current limit.
	Limit int
}
