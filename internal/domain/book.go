package domain

import (
	"time"
)

// Book genres recognized by the catalog. The list mirrors the upload form;
// other values are accepted but never suggested.
const (
	GenreFiction    = "Fiction"
	GenreNonFiction = "Non-Fiction"
	GenreMystery    = "Mystery"
	GenreSciFi      = "Sci-Fi"
	GenreRomance    = "Romance"
	GenreBiography  = "Biography"
)

// Book represents a book in the public catalog.
// Every book is owned by the user who uploaded it; only the owner may
// modify or delete it, but the catalog itself is readable by anyone.
type Book struct {
	// ID is the unique identifier for the book (UUID).
	ID string `json:"id"`

	// Title is the book title.
	Title string `json:"title"`

	// Author is the book author's name.
	Author string `json:"author"`

	// Genre classifies the book for filtering.
	Genre string `json:"genre"`

	// Rating is the aggregate rating, 0-5.
	Rating float64 `json:"rating"`

	// IsNew marks recently added titles for the frontend.
	IsNew bool `json:"isNew"`

	// Description is the free-form book summary.
	Description string `json:"description"`

	// CoverImage is the URL of the cover image.
	CoverImage string `json:"coverImage"`

	// UploadedBy is the ID of the owning user. Set at creation, immutable.
	UploadedBy int64 `json:"uploadedBy"`

	// CreatedAt is the timestamp when the book was uploaded.
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark represents a saved URL. Unlike books, bookmarks are private:
// both reads and writes are restricted to the owning user.
type Bookmark struct {
	// ID is the unique identifier for the bookmark (UUID).
	ID string `json:"id"`

	// URL is the bookmarked link.
	URL string `json:"urlLink"`

	// Description is the free-form note attached to the link.
	Description string `json:"description"`

	// Category groups bookmarks for the frontend.
	Category string `json:"category"`

	// UserID is the ID of the owning user. Set at creation, immutable.
	UserID int64 `json:"userId"`

	// CreatedAt is the timestamp when the bookmark was saved.
	CreatedAt time.Time `json:"created_at"`
}
