package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

func TestBookService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateBookInput
		wantErr error
	}{
		{
			name: "success",
			input: CreateBookInput{
				Title:      "Dune",
				Author:     "Frank Herbert",
				Genre:      domain.GenreSciFi,
				Rating:     4.5,
				UploadedBy: 1,
			},
		},
		{
			name:    "missing title",
			input:   CreateBookInput{Author: "x", Genre: domain.GenreFiction, UploadedBy: 1},
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing author",
			input:   CreateBookInput{Title: "x", Genre: domain.GenreFiction, UploadedBy: 1},
			wantErr: ErrMissingFields,
		},
		{
			name: "rating out of range",
			input: CreateBookInput{
				Title: "x", Author: "y", Genre: domain.GenreFiction,
				Rating: 5.5, UploadedBy: 1,
			},
			wantErr: ErrInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBookService(newMockBookRepository(), zerolog.Nop())

			book, err := svc.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, book.ID)
			require.True(t, book.IsNew)
			require.Equal(t, tt.input.UploadedBy, book.UploadedBy)
		})
	}
}

func TestBookService_Update_Ownership(t *testing.T) {
	repo := newMockBookRepository()
	svc := NewBookService(repo, zerolog.Nop())

	book, err := svc.Create(context.Background(), CreateBookInput{
		Title:      "Dune",
		Author:     "Frank Herbert",
		Genre:      domain.GenreSciFi,
		UploadedBy: 1,
	})
	require.NoError(t, err)

	title := "Dune Messiah"

	t.Run("owner can update", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), UpdateBookInput{
			ID:       book.ID,
			CallerID: 1,
			Title:    &title,
		})
		require.NoError(t, err)
		require.Equal(t, "Dune Messiah", updated.Title)
		require.False(t, updated.IsNew)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := svc.Update(context.Background(), UpdateBookInput{
			ID:       book.ID,
			CallerID: 2,
			Title:    &title,
		})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing book is not found even for a non-owner", func(t *testing.T) {
		// Existence is checked before ownership, so an absent book never
		// reports forbidden.
		_, err := svc.Update(context.Background(), UpdateBookInput{
			ID:       "no-such-book",
			CallerID: 2,
			Title:    &title,
		})
		require.ErrorIs(t, err, domain.ErrBookNotFound)
		require.NotErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestBookService_Delete_Ownership(t *testing.T) {
	repo := newMockBookRepository()
	svc := NewBookService(repo, zerolog.Nop())

	book, err := svc.Create(context.Background(), CreateBookInput{
		Title:      "Dune",
		Author:     "Frank Herbert",
		Genre:      domain.GenreSciFi,
		UploadedBy: 1,
	})
	require.NoError(t, err)

	t.Run("non-owner is forbidden", func(t *testing.T) {
		err := svc.Delete(context.Background(), book.ID, 2)
		require.ErrorIs(t, err, domain.ErrForbidden)

		_, err = svc.Get(context.Background(), book.ID)
		require.NoError(t, err, "book must survive a forbidden delete")
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), book.ID, 1))

		_, err := svc.Get(context.Background(), book.ID)
		require.ErrorIs(t, err, domain.ErrBookNotFound)
	})

	t.Run("missing book is not found", func(t *testing.T) {
		err := svc.Delete(context.Background(), "no-such-book", 2)
		require.ErrorIs(t, err, domain.ErrBookNotFound)
	})
}

func TestBookService_List_GenreFilter(t *testing.T) {
	repo := newMockBookRepository()
	svc := NewBookService(repo, zerolog.Nop())

	for _, b := range []CreateBookInput{
		{Title: "Dune", Author: "Herbert", Genre: domain.GenreSciFi, UploadedBy: 1},
		{Title: "Gone Girl", Author: "Flynn", Genre: domain.GenreMystery, UploadedBy: 1},
	} {
		_, err := svc.Create(context.Background(), b)
		require.NoError(t, err)
	}

	books, err := svc.List(context.Background(), ListBooksInput{Genre: domain.GenreSciFi})
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "Dune", books[0].Title)
}
