package queries

import (
	"errors"

	"library-backend/domain/catalog"
)

// ListReviewsQuery returns all reviews for a book.
type ListReviewsQuery struct {
	BookID string `json:"book_id" validate:"required"`
}

// Validate implements bus.Query.
func (q ListReviewsQuery) Validate() error {
	if q.BookID == "" {
		return errors.New("book ID is required")
	}
	return nil
}

// ReviewsResult is the result of ListReviewsQuery.
type ReviewsResult struct {
	Reviews       []*catalog.Review `json:"reviews"`
	Count         int               `json:"count"`
	AverageRating float64           `json:"average_rating"`
}
