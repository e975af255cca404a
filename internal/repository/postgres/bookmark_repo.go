package postgres

import (
	"context"
	"fmt"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository"
)

// bookmarkRepository implements repository.BookmarkRepository for PostgreSQL.
type bookmarkRepository struct {
	db *DB
}

// NewBookmarkRepository creates a new PostgreSQL bookmark repository.
func NewBookmarkRepository(db *DB) repository.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

const bookmarkColumns = `id, url, description, category, user_id, created_at`

// Create creates a new bookmark.
func (r *bookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	query := `
		INSERT INTO bookmarks (id, url, description, category, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		bookmark.ID,
		bookmark.URL,
		bookmark.Description,
		bookmark.Category,
		bookmark.UserID,
		bookmark.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}

	return nil
}

// scanBookmark scans a bookmark row into a domain.Bookmark.
func scanBookmark(row interface {
	Scan(dest ...any) error
}) (*domain.Bookmark, error) {
	bookmark := &domain.Bookmark{}

	err := row.Scan(
		&bookmark.ID,
		&bookmark.URL,
		&bookmark.Description,
		&bookmark.Category,
		&bookmark.UserID,
		&bookmark.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return bookmark, nil
}

// GetByID retrieves a bookmark by ID.
func (r *bookmarkRepository) GetByID(ctx context.Context, id string) (*domain.Bookmark, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookmarks WHERE id = $1`, bookmarkColumns)

	bookmark, err := scanBookmark(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark by ID: %w", err)
	}
	return bookmark, nil
}

// ListByUser returns the bookmarks owned by a user, newest first.
func (r *bookmarkRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Bookmark, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookmarks WHERE user_id = $1 ORDER BY created_at DESC`, bookmarkColumns)

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []*domain.Bookmark
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, bookmark)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}

	return bookmarks, nil
}

// Update updates an existing bookmark.
func (r *bookmarkRepository) Update(ctx context.Context, bookmark *domain.Bookmark) error {
	query := `
		UPDATE bookmarks
		SET url = $1, description = $2, category = $3
		WHERE id = $4
	`

	result, err := r.db.Pool.Exec(ctx, query,
		bookmark.URL,
		bookmark.Description,
		bookmark.Category,
		bookmark.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bookmark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete deletes a bookmark by ID.
func (r *bookmarkRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Count returns the total number of bookmarks.
func (r *bookmarkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookmarks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}
