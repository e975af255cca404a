package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

func TestBookmarkService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateBookmarkInput
		wantErr error
	}{
		{
			name:  "success",
			input: CreateBookmarkInput{URL: "https://example.com/article", UserID: 1},
		},
		{
			name:    "empty url",
			input:   CreateBookmarkInput{URL: "", UserID: 1},
			wantErr: ErrMissingFields,
		},
		{
			name:    "relative url",
			input:   CreateBookmarkInput{URL: "not-a-url", UserID: 1},
			wantErr: ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBookmarkService(newMockBookmarkRepository(), zerolog.Nop())

			bookmark, err := svc.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, bookmark.ID)
			require.Equal(t, tt.input.UserID, bookmark.UserID)
		})
	}
}

func TestBookmarkService_OwnerRestricted(t *testing.T) {
	repo := newMockBookmarkRepository()
	svc := NewBookmarkService(repo, zerolog.Nop())

	bookmark, err := svc.Create(context.Background(), CreateBookmarkInput{
		URL:    "https://example.com",
		UserID: 1,
	})
	require.NoError(t, err)

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.Get(context.Background(), bookmark.ID, 1)
		require.NoError(t, err)
		require.Equal(t, bookmark.ID, got.ID)
	})

	t.Run("non-owner cannot read", func(t *testing.T) {
		// Reads are owner-only, unlike the public book catalog.
		_, err := svc.Get(context.Background(), bookmark.ID, 2)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing bookmark is not found before forbidden", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "no-such-bookmark", 2)
		require.ErrorIs(t, err, domain.ErrBookmarkNotFound)
		require.NotErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("list is scoped to the caller", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateBookmarkInput{
			URL:    "https://other.example.com",
			UserID: 2,
		})
		require.NoError(t, err)

		mine, err := svc.ListByUser(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, int64(1), mine[0].UserID)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := svc.Delete(context.Background(), bookmark.ID, 2)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), bookmark.ID, 1))

		_, err := svc.Get(context.Background(), bookmark.ID, 1)
		require.ErrorIs(t, err, domain.ErrBookmarkNotFound)
	})
}

func TestBookmarkService_Update(t *testing.T) {
	repo := newMockBookmarkRepository()
	svc := NewBookmarkService(repo, zerolog.Nop())

	bookmark, err := svc.Create(context.Background(), CreateBookmarkInput{
		URL:      "https://example.com",
		Category: "reading",
		UserID:   1,
	})
	require.NoError(t, err)

	newURL := "https://example.com/updated"
	updated, err := svc.Update(context.Background(), UpdateBookmarkInput{
		ID:       bookmark.ID,
		CallerID: 1,
		URL:      &newURL,
	})
	require.NoError(t, err)
	require.Equal(t, newURL, updated.URL)
	require.Equal(t, "reading", updated.Category)

	badURL := "no-scheme"
	_, err = svc.Update(context.Background(), UpdateBookmarkInput{
		ID:       bookmark.ID,
		CallerID: 1,
		URL:      &badURL,
	})
	require.ErrorIs(t, err, ErrInvalidURL)
}
