package handlers

import (
	"context"

	"library-backend/application/ports"
	"library-backend/application/queries"

	"go.uber.org/zap"
)

// ReviewHandler serves review list queries.
type ReviewHandler struct {
	reviewRepo ports.ReviewRepository
	logger     *zap.Logger
}

// NewReviewHandler creates a new review query handler.
func NewReviewHandler(reviewRepo ports.ReviewRepository, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviewRepo: reviewRepo, logger: logger}
}

// ListReviews returns all reviews for a book with the computed average.
func (h *ReviewHandler) ListReviews(ctx context.Context, query queries.ListReviewsQuery) (*queries.ReviewsResult, error) {
	reviews, err := h.reviewRepo.ListByBook(ctx, query.BookID)
	if err != nil {
		return nil, err
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	average := 0.0
	if len(reviews) > 0 {
		average = float64(sum) / float64(len(reviews))
	}

	return &queries.ReviewsResult{
		Reviews:       reviews,
		Count:         len(reviews),
		AverageRating: average,
	}, nil
}
