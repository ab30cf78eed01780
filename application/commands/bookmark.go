package commands

import (
	"context"
	"errors"
	"fmt"

	"library-backend/application/commands/bus"
	"library-backend/application/ports"
	"library-backend/domain/catalog"

	"go.uber.org/zap"
)

// AddBookmarkCommand saves a book to the user's bookmark list.
type AddBookmarkCommand struct {
	UserID string `json:"user_id" validate:"required"`
	BookID string `json:"book_id" validate:"required"`
}

// Validate implements bus.Command.
func (cmd AddBookmarkCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.BookID == "" {
		return errors.New("book ID is required")
	}
	return nil
}

// RemoveBookmarkCommand removes a book from the user's bookmark list.
type RemoveBookmarkCommand struct {
	UserID string `json:"user_id" validate:"required"`
	BookID string `json:"book_id" validate:"required"`
}

// Validate implements bus.Command.
func (cmd RemoveBookmarkCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.BookID == "" {
		return errors.New("book ID is required")
	}
	return nil
}

// BookmarkHandler handles both bookmark commands.
type BookmarkHandler struct {
	bookmarkRepo ports.BookmarkRepository
	bookRepo     ports.BookRepository
	logger       *zap.Logger
}

// NewBookmarkHandler creates a new handler instance.
func NewBookmarkHandler(
	bookmarkRepo ports.BookmarkRepository,
	bookRepo ports.BookRepository,
	logger *zap.Logger,
) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepo: bookmarkRepo,
		bookRepo:     bookRepo,
		logger:       logger,
	}
}

// Handle executes add or remove. Adding verifies the book exists; both
// operations are idempotent.
func (h *BookmarkHandler) Handle(ctx context.Context, c bus.Command) error {
	switch cmd := c.(type) {
	case AddBookmarkCommand:
		if _, err := h.bookRepo.GetByID(ctx, cmd.BookID); err != nil {
			return err
		}
		bookmark, err := catalog.NewBookmark(cmd.UserID, cmd.BookID)
		if err != nil {
			return err
		}
		if err := h.bookmarkRepo.Add(ctx, bookmark); err != nil {
			return err
		}
		h.logger.Info("bookmark added",
			zap.String("userID", cmd.UserID),
			zap.String("bookID", cmd.BookID),
		)
		return nil

	case RemoveBookmarkCommand:
		if err := h.bookmarkRepo.Remove(ctx, cmd.UserID, cmd.BookID); err != nil {
			return err
		}
		h.logger.Info("bookmark removed",
			zap.String("userID", cmd.UserID),
			zap.String("bookID", cmd.BookID),
		)
		return nil

	default:
		return fmt.Errorf("unexpected command type %T", c)
	}
}
