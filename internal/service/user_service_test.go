package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		wantErr   error
		setupRepo func(*mockUserRepository)
	}{
		{
			name:    "success",
			input:   RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"},
			wantErr: nil,
		},
		{
			name:    "username too short",
			input:   RegisterInput{Username: "ab", Email: "a@x.com", Password: "pw1"},
			wantErr: ErrInvalidUsername,
		},
		{
			name:    "bad email",
			input:   RegisterInput{Username: "alice", Email: "not-an-email", Password: "pw1"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "empty password",
			input:   RegisterInput{Username: "alice", Email: "a@x.com", Password: ""},
			wantErr: ErrInvalidPassword,
		},
		{
			name:    "duplicate username",
			input:   RegisterInput{Username: "alice", Email: "other@x.com", Password: "pw1"},
			wantErr: domain.ErrUserAlreadyExists,
			setupRepo: func(m *mockUserRepository) {
				m.users[1] = &domain.User{ID: 1, Username: "alice", Email: "a@x.com"}
			},
		},
		{
			name:    "duplicate email",
			input:   RegisterInput{Username: "bob", Email: "a@x.com", Password: "pw1"},
			wantErr: domain.ErrUserAlreadyExists,
			setupRepo: func(m *mockUserRepository) {
				m.users[1] = &domain.User{ID: 1, Username: "alice", Email: "a@x.com"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockUserRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			svc := NewUserService(repo, bcrypt.MinCost, zerolog.Nop())

			user, err := svc.Register(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotZero(t, user.ID)
			require.Equal(t, tt.input.Username, user.Username)
			require.True(t, user.IsActive)
			require.Equal(t, domain.DefaultSettings(), user.Settings)

			// The raw password is never stored.
			require.NotEqual(t, tt.input.Password, user.PasswordHash)
			require.NoError(t, bcrypt.CompareHashAndPassword(
				[]byte(user.PasswordHash), []byte(tt.input.Password)))
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo, bcrypt.MinCost, zerolog.Nop())

	registered, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw1",
	})
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "alice", "pw1")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
	})

	t.Run("by email", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "a@x.com", "pw1")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "alice", "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user reports the same error", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody", "pw1")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		repo.users[registered.ID].IsActive = false
		defer func() { repo.users[registered.ID].IsActive = true }()

		_, err := svc.Authenticate(context.Background(), "alice", "pw1")
		require.ErrorIs(t, err, domain.ErrUserInactive)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo, bcrypt.MinCost, zerolog.Nop())

	registered, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw1",
	})
	require.NoError(t, err)

	bio := "avid reader"
	settings := domain.Settings{PublicProfile: false, EmailNotifications: true}
	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   registered.ID,
		Bio:      &bio,
		Settings: &settings,
	})
	require.NoError(t, err)
	require.Equal(t, "avid reader", updated.Bio)
	require.Equal(t, settings, updated.Settings)
	require.Equal(t, "alice", updated.Username)

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 999})
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
