package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository"
)

// mockUserRepository is an in-memory repository.UserRepository.
type mockUserRepository struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error
	getErr    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("%w", domain.ErrUserAlreadyExists)
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.User], error) {
	result := &repository.ListResult[domain.User]{Total: int64(len(m.users))}
	for _, u := range m.users {
		result.Items = append(result.Items, u)
	}
	return result, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

// mockBookRepository is an in-memory repository.BookRepository.
type mockBookRepository struct {
	books     map[string]*domain.Book
	createErr error
}

func newMockBookRepository() *mockBookRepository {
	return &mockBookRepository{books: make(map[string]*domain.Book)}
}

func (m *mockBookRepository) Create(ctx context.Context, book *domain.Book) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.books[book.ID] = book
	return nil
}

func (m *mockBookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if b, ok := m.books[id]; ok {
		return b, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockBookRepository) List(ctx context.Context, opts repository.BookListOptions) ([]*domain.Book, error) {
	var result []*domain.Book
	for _, b := range m.books {
		if opts.Genre == "" || b.Genre == opts.Genre {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookRepository) Update(ctx context.Context, book *domain.Book) error {
	if _, ok := m.books[book.ID]; !ok {
		return repository.ErrNotFound
	}
	m.books[book.ID] = book
	return nil
}

func (m *mockBookRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.books[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *mockBookRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.books)), nil
}

func (m *mockBookRepository) CountByGenre(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, b := range m.books {
		counts[b.Genre]++
	}
	return counts, nil
}

// mockBookmarkRepository is an in-memory repository.BookmarkRepository.
type mockBookmarkRepository struct {
	bookmarks map[string]*domain.Bookmark
}

func newMockBookmarkRepository() *mockBookmarkRepository {
	return &mockBookmarkRepository{bookmarks: make(map[string]*domain.Bookmark)}
}

func (m *mockBookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	m.bookmarks[bookmark.ID] = bookmark
	return nil
}

func (m *mockBookmarkRepository) GetByID(ctx context.Context, id string) (*domain.Bookmark, error) {
	if b, ok := m.bookmarks[id]; ok {
		return b, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockBookmarkRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Bookmark, error) {
	var result []*domain.Bookmark
	for _, b := range m.bookmarks {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookmarkRepository) Update(ctx context.Context, bookmark *domain.Bookmark) error {
	if _, ok := m.bookmarks[bookmark.ID]; !ok {
		return repository.ErrNotFound
	}
	m.bookmarks[bookmark.ID] = bookmark
	return nil
}

func (m *mockBookmarkRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.bookmarks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bookmarks, id)
	return nil
}

func (m *mockBookmarkRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.bookmarks)), nil
}
