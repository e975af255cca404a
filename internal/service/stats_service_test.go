package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/cache/memory"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

func TestStatsService_Collect(t *testing.T) {
	userRepo := newMockUserRepository()
	bookRepo := newMockBookRepository()
	bookmarkRepo := newMockBookmarkRepository()

	now := time.Now().UTC()
	userRepo.users[1] = &domain.User{ID: 1, Username: "old", CreatedAt: now.AddDate(0, -2, 0)}
	userRepo.users[2] = &domain.User{ID: 2, Username: "new", CreatedAt: now.AddDate(0, 0, -1)}
	bookRepo.books["a"] = &domain.Book{ID: "a", Genre: domain.GenreSciFi}
	bookRepo.books["b"] = &domain.Book{ID: "b", Genre: domain.GenreSciFi}
	bookRepo.books["c"] = &domain.Book{ID: "c", Genre: domain.GenreMystery}
	bookmarkRepo.bookmarks["x"] = &domain.Bookmark{ID: "x", UserID: 1}

	svc := NewStatsService(userRepo, bookRepo, bookmarkRepo, nil, zerolog.Nop())

	stats, err := svc.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(1), stats.NewUsers30d)
	require.Equal(t, int64(3), stats.TotalBooks)
	require.Equal(t, int64(1), stats.TotalBookmarks)
	require.Equal(t, int64(2), stats.BooksByGenre[domain.GenreSciFi])
	require.Equal(t, int64(1), stats.BooksByGenre[domain.GenreMystery])
}

func TestStatsService_Collect_Cached(t *testing.T) {
	userRepo := newMockUserRepository()
	bookRepo := newMockBookRepository()
	bookmarkRepo := newMockBookmarkRepository()

	statsCache := memory.NewCache()
	defer statsCache.Stop()

	svc := NewStatsService(userRepo, bookRepo, bookmarkRepo, statsCache, zerolog.Nop())

	first, err := svc.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), first.TotalBooks)

	// A write after the first collection is invisible until the cache entry
	// expires.
	bookRepo.books["a"] = &domain.Book{ID: "a", Genre: domain.GenreFiction}

	second, err := svc.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), second.TotalBooks)
}
