package postgres

import (
	"context"
	"fmt"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository"
)

// bookRepository implements repository.BookRepository for PostgreSQL.
type bookRepository struct {
	db *DB
}

// NewBookRepository creates a new PostgreSQL book repository.
func NewBookRepository(db *DB) repository.BookRepository {
	return &bookRepository{db: db}
}

const bookColumns = `id, title, author, genre, rating, is_new, description, cover_image, uploaded_by, created_at`

// sortColumns maps API sort keys to catalog columns; only whitelisted keys
// ever reach the SQL string.
var sortColumns = map[string]string{
	"title":     "title",
	"author":    "author",
	"rating":    "rating",
	"createdAt": "created_at",
}

// Create creates a new book.
func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	query := `
		INSERT INTO books (id, title, author, genre, rating, is_new, description, cover_image, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.Rating,
		book.IsNew,
		book.Description,
		book.CoverImage,
		book.UploadedBy,
		book.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// scanBook scans a book row into a domain.Book.
func scanBook(row interface {
	Scan(dest ...any) error
}) (*domain.Book, error) {
	book := &domain.Book{}

	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Rating,
		&book.IsNew,
		&book.Description,
		&book.CoverImage,
		&book.UploadedBy,
		&book.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return book, nil
}

// GetByID retrieves a book by ID.
func (r *bookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	book, err := scanBook(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by ID: %w", err)
	}
	return book, nil
}

// List returns books matching the options.
func (r *bookRepository) List(ctx context.Context, opts repository.BookListOptions) ([]*domain.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books`, bookColumns)
	var args []any

	if opts.Genre != "" {
		query += ` WHERE genre = $1`
		args = append(args, opts.Genre)
	}

	if column, ok := sortColumns[opts.SortBy]; ok {
		query += ` ORDER BY ` + column
		if opts.Descending {
			query += ` DESC`
		}
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

// Update updates an existing book.
func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, genre = $3, rating = $4, is_new = $5, description = $6, cover_image = $7
		WHERE id = $8
	`

	result, err := r.db.Pool.Exec(ctx, query,
		book.Title,
		book.Author,
		book.Genre,
		book.Rating,
		book.IsNew,
		book.Description,
		book.CoverImage,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete deletes a book by ID.
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Count returns the total number of books.
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// CountByGenre returns the number of books per genre.
func (r *bookRepository) CountByGenre(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT genre, COUNT(*) FROM books GROUP BY genre`)
	if err != nil {
		return nil, fmt.Errorf("failed to count books by genre: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var genre string
		var count int64
		if err := rows.Scan(&genre, &count); err != nil {
			return nil, fmt.Errorf("failed to scan genre count: %w", err)
		}
		counts[genre] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate genre counts: %w", err)
	}

	return counts, nil
}
