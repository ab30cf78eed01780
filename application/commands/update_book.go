package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/application/commands/bus"
	"library-backend/application/ports"
	"library-backend/domain/events"

	"go.uber.org/zap"
)

// UpdateBookCommand edits catalog metadata for an existing book. Empty
// fields are left unchanged.
type UpdateBookCommand struct {
	BookID      string   `json:"book_id" validate:"required"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genre       string   `json:"genre"`
	Language    string   `json:"language"`
	Year        int      `json:"year"`
	ISBN        string   `json:"isbn"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Validate implements bus.Command.
func (cmd UpdateBookCommand) Validate() error {
	if cmd.BookID == "" {
		return errors.New("book ID is required")
	}
	if cmd.Year != 0 && (cmd.Year < 0 || cmd.Year > time.Now().Year()+1) {
		return errors.New("year is out of range")
	}
	return nil
}

// UpdateBookHandler handles UpdateBookCommand.
type UpdateBookHandler struct {
	bookRepo  ports.BookRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateBookHandler creates a new handler instance.
func NewUpdateBookHandler(bookRepo ports.BookRepository, publisher ports.EventPublisher, logger *zap.Logger) *UpdateBookHandler {
	return &UpdateBookHandler{bookRepo: bookRepo, publisher: publisher, logger: logger}
}

// Handle executes the metadata update.
func (h *UpdateBookHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(UpdateBookCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", c)
	}

	book, err := h.bookRepo.GetByID(ctx, cmd.BookID)
	if err != nil {
		return err
	}

	if cmd.Title != "" {
		book.Title = cmd.Title
	}
	if cmd.Author != "" {
		book.Author = cmd.Author
	}
	if cmd.Genre != "" {
		book.Genre = cmd.Genre
	}
	if cmd.Language != "" {
		book.Language = cmd.Language
	}
	if cmd.Year != 0 {
		book.Year = cmd.Year
	}
	if cmd.ISBN != "" {
		book.ISBN = cmd.ISBN
	}
	if cmd.Description != "" {
		book.Description = cmd.Description
	}
	if cmd.Tags != nil {
		book.Tags = cmd.Tags
	}
	book.UpdatedAt = time.Now()

	if err := h.bookRepo.Save(ctx, book); err != nil {
		return err
	}

	h.logger.Info("book metadata updated", zap.String("bookID", book.ID))

	event := events.NewBookUpdated(book.ID, book.Title)
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish update event", zap.Error(err), zap.String("bookID", book.ID))
	}

	return nil
}
