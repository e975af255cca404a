// Package domain contains the core business entities for ReadHaven.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the book library.
package domain

import (
	"time"
)

// User represents a registered reader account.
// Users own the books and bookmarks they upload.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Username is the unique username for login and display.
	// Constraints: 3-255 characters.
	Username string `json:"username"`

	// Email is the unique email address for the user.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never be exposed in API responses.
	PasswordHash string `json:"-"`

	// Bio is the free-form profile description.
	Bio string `json:"bio"`

	// Avatar is the URL of the user's avatar image.
	Avatar string `json:"avatar"`

	// ReadingStats aggregates the user's reading activity.
	ReadingStats ReadingStats `json:"reading_stats"`

	// Settings holds the user's preference flags.
	Settings Settings `json:"settings"`

	// IsActive indicates whether the account is active.
	// Inactive users cannot authenticate.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadingStats aggregates a user's reading activity.
type ReadingStats struct {
	BooksRead     int    `json:"booksRead"`
	CurrentStreak int    `json:"currentStreak"`
	TotalPages    int    `json:"totalPages"`
	FavoriteGenre string `json:"favoriteGenre"`
}

// Settings holds per-user preference flags.
type Settings struct {
	EmailNotifications bool `json:"emailNotifications"`
	ReadingReminders   bool `json:"readingReminders"`
	PublicProfile      bool `json:"publicProfile"`
}

// DefaultSettings returns the settings applied to new accounts.
func DefaultSettings() Settings {
	return Settings{
		EmailNotifications: true,
		ReadingReminders:   true,
		PublicProfile:      true,
	}
}

// NewUser creates a new User with default values.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Settings:     DefaultSettings(),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CanAuthenticate returns true if the user is allowed to authenticate.
func (u *User) CanAuthenticate() bool {
	return u.IsActive
}
