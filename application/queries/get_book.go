package queries

import (
	"errors"

	"library-backend/domain/catalog"
)

// GetBookQuery loads one catalog entry with its reviews.
type GetBookQuery struct {
	BookID string `json:"book_id" validate:"required"`
}

// Validate implements bus.Query.
func (q GetBookQuery) Validate() error {
	if q.BookID == "" {
		return errors.New("book ID is required")
	}
	return nil
}

// GetBookResult carries the book and its review aggregate.
type GetBookResult struct {
	Book          *catalog.Book     `json:"book"`
	Reviews       []*catalog.Review `json:"reviews"`
	AverageRating float64           `json:"average_rating"`
}

// GetBookFileQuery produces a presigned download URL for a stored PDF.
type GetBookFileQuery struct {
	Filename string `json:"filename" validate:"required"`
}

// Validate implements bus.Query.
func (q GetBookFileQuery) Validate() error {
	if q.Filename == "" {
		return errors.New("filename is required")
	}
	return nil
}

// GetBookFileResult carries the download URL and whatever catalog metadata
// exists for the file. Book is derived from the filename when the catalog
// has no entry.
type GetBookFileResult struct {
	URL       string        `json:"url"`
	ExpiresIn int           `json:"expires_in"`
	Book      *catalog.Book `json:"book"`
}
