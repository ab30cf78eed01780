package catalog

import (
	"time"

	pkgerrors "library-backend/pkg/errors"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a single user's rating of a book, with an optional comment.
// A user has at most one review per book; re-rating replaces the old one.
type Review struct {
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReview validates and builds a review.
func NewReview(bookID, userID, userName string, rating int, comment string) (*Review, error) {
	if bookID == "" {
		return nil, pkgerrors.NewValidationError("bookID cannot be empty")
	}
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, pkgerrors.NewValidationError("rating must be between 1 and 5")
	}
	return &Review{
		BookID:    bookID,
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Bookmark marks a book as saved by a user.
type Bookmark struct {
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	DateAdded time.Time `json:"date_added"`
}

// NewBookmark builds a bookmark stamped with the current time.
func NewBookmark(userID, bookID string) (*Bookmark, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if bookID == "" {
		return nil, pkgerrors.NewValidationError("bookID cannot be empty")
	}
	return &Bookmark{
		UserID:    userID,
		BookID:    bookID,
		DateAdded: time.Now().UTC(),
	}, nil
}
