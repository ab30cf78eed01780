package commands

import (
	"context"
	"errors"
	"fmt"

	"library-backend/application/commands/bus"
	"library-backend/application/ports"
	"library-backend/domain/catalog"
	"library-backend/domain/events"
	apperrors "library-backend/pkg/errors"

	"go.uber.org/zap"
)

// RateBookCommand records or replaces a user's rating and review comment.
type RateBookCommand struct {
	BookID   string `json:"book_id" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"max=2000"`
}

// Validate implements bus.Command.
func (cmd RateBookCommand) Validate() error {
	if cmd.BookID == "" {
		return errors.New("book ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Rating < catalog.MinRating || cmd.Rating > catalog.MaxRating {
		return fmt.Errorf("rating must be between %d and %d", catalog.MinRating, catalog.MaxRating)
	}
	return nil
}

// RateBookHandler handles RateBookCommand.
type RateBookHandler struct {
	bookRepo   ports.BookRepository
	reviewRepo ports.ReviewRepository
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

// NewRateBookHandler creates a new handler instance.
func NewRateBookHandler(
	bookRepo ports.BookRepository,
	reviewRepo ports.ReviewRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *RateBookHandler {
	return &RateBookHandler{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle upserts the review and keeps the book's rating aggregate in sync.
// A second rating by the same user replaces the first instead of counting
// twice.
func (h *RateBookHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(RateBookCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", c)
	}

	book, err := h.bookRepo.GetByID(ctx, cmd.BookID)
	if err != nil {
		return err
	}

	previous := 0
	if existing, err := h.reviewRepo.Get(ctx, cmd.BookID, cmd.UserID); err == nil {
		previous = existing.Rating
	} else if !apperrors.IsNotFound(err) {
		return err
	}

	review, err := catalog.NewReview(cmd.BookID, cmd.UserID, cmd.UserName, cmd.Rating, cmd.Comment)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if err := h.reviewRepo.Put(ctx, review); err != nil {
		return err
	}

	if err := book.ApplyRating(cmd.Rating, previous); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := h.bookRepo.Save(ctx, book); err != nil {
		return err
	}

	h.logger.Info("book rated",
		zap.String("bookID", cmd.BookID),
		zap.String("userID", cmd.UserID),
		zap.Int("rating", cmd.Rating),
	)

	event := events.NewBookRated(cmd.BookID, cmd.UserID, cmd.Rating)
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish rating event", zap.Error(err), zap.String("bookID", cmd.BookID))
	}

	return nil
}
