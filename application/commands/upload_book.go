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

// UploadBookCommand stores a new PDF and registers it in the catalog.
type UploadBookCommand struct {
	BookID      string `json:"book_id" validate:"required"`
	UserID      string `json:"user_id" validate:"required"`
	Filename    string `json:"filename" validate:"required"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Language    string `json:"language"`
	Year        int    `json:"year"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Content     []byte `json:"-"`
	ContentType string `json:"-"`
}

// Validate implements bus.Command.
func (cmd UploadBookCommand) Validate() error {
	if cmd.BookID == "" {
		return errors.New("book ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Filename == "" {
		return errors.New("filename is required")
	}
	if len(cmd.Content) == 0 {
		return errors.New("file content is empty")
	}
	return nil
}

// UploadBookHandler handles UploadBookCommand.
type UploadBookHandler struct {
	bookRepo    ports.BookRepository
	store       ports.ObjectStore
	publisher   ports.EventPublisher
	booksPrefix string
	logger      *zap.Logger
}

// NewUploadBookHandler creates a new handler instance.
func NewUploadBookHandler(
	bookRepo ports.BookRepository,
	store ports.ObjectStore,
	publisher ports.EventPublisher,
	booksPrefix string,
	logger *zap.Logger,
) *UploadBookHandler {
	return &UploadBookHandler{
		bookRepo:    bookRepo,
		store:       store,
		publisher:   publisher,
		booksPrefix: booksPrefix,
		logger:      logger,
	}
}

// Handle executes the upload: the PDF goes to object storage first, then
// the catalog entry is written so a listed book is always downloadable.
func (h *UploadBookHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(UploadBookCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", c)
	}

	if _, err := h.bookRepo.GetByFilename(ctx, cmd.Filename); err == nil {
		return apperrors.NewConflictError(fmt.Sprintf("a book with filename %s already exists", cmd.Filename))
	} else if !apperrors.IsNotFound(err) {
		return err
	}

	title, author := cmd.Title, cmd.Author
	if title == "" || author == "" {
		meta := catalog.ParseFilename(cmd.Filename)
		if title == "" {
			title = meta.Title
		}
		if author == "" {
			author = meta.Author
		}
	}

	book, err := catalog.NewBook(cmd.Filename, title, author, cmd.Genre, cmd.Language)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	book.ID = cmd.BookID
	book.Year = cmd.Year
	book.ISBN = cmd.ISBN
	book.Description = cmd.Description

	contentType := cmd.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}

	if err := h.store.Upload(ctx, h.booksPrefix+cmd.Filename, cmd.Content, contentType, ""); err != nil {
		return err
	}

	if err := h.bookRepo.Save(ctx, book); err != nil {
		return err
	}

	h.logger.Info("book uploaded",
		zap.String("bookID", book.ID),
		zap.String("filename", book.Filename),
		zap.Int("size", len(cmd.Content)),
	)

	event := events.NewBookUploaded(book.ID, book.Filename, book.Title, book.Author)
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish upload event", zap.Error(err), zap.String("bookID", book.ID))
	}

	return nil
}
