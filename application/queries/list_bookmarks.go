package queries

import (
	"errors"
	"time"

	"library-backend/domain/catalog"
)

// ListBookmarksQuery returns a user's bookmarked books.
type ListBookmarksQuery struct {
	UserID string `json:"user_id" validate:"required"`
}

// Validate implements bus.Query.
func (q ListBookmarksQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// BookmarkedBook pairs a bookmark with its catalog entry. Book is nil when
// the entry has been removed from the catalog since bookmarking.
type BookmarkedBook struct {
	Book      *catalog.Book `json:"book"`
	BookID    string        `json:"book_id"`
	DateAdded time.Time     `json:"date_added"`
}

// BookmarksResult is the result of ListBookmarksQuery.
type BookmarksResult struct {
	Bookmarks []BookmarkedBook `json:"bookmarks"`
	Count     int              `json:"count"`
}
