package handlers

import (
	"context"
	"time"

	"library-backend/application/ports"
	"library-backend/application/queries"
	"library-backend/domain/catalog"
	apperrors "library-backend/pkg/errors"

	"go.uber.org/zap"
)

const downloadExpiry = time.Hour

// FileHandler serves presigned download URLs for stored PDFs.
type FileHandler struct {
	bookRepo    ports.BookRepository
	store       ports.ObjectStore
	booksPrefix string
	logger      *zap.Logger
}

// NewFileHandler creates a new file query handler.
func NewFileHandler(
	bookRepo ports.BookRepository,
	store ports.ObjectStore,
	booksPrefix string,
	logger *zap.Logger,
) *FileHandler {
	return &FileHandler{
		bookRepo:    bookRepo,
		store:       store,
		booksPrefix: booksPrefix,
		logger:      logger,
	}
}

// GetBookFile verifies the object exists and returns a presigned URL for
// it. Catalog metadata is attached when present; otherwise a transient
// entry is derived from the filename so the response always carries a
// title and author.
func (h *FileHandler) GetBookFile(ctx context.Context, query queries.GetBookFileQuery) (*queries.GetBookFileResult, error) {
	key := h.booksPrefix + query.Filename

	entry, err := h.store.Head(ctx, key)
	if err != nil {
		return nil, err
	}

	url, err := h.store.PresignGet(ctx, key, downloadExpiry)
	if err != nil {
		return nil, err
	}

	book, err := h.bookRepo.GetByFilename(ctx, query.Filename)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		book = catalog.BookFromFilename(query.Filename)
	}
	if book != nil {
		book.ObjectInfo = catalog.ObjectInfo{
			Size:         entry.Size,
			LastModified: entry.LastModified,
			ContentType:  entry.ContentType,
		}
	}

	return &queries.GetBookFileResult{
		URL:       url,
		ExpiresIn: int(downloadExpiry.Seconds()),
		Book:      book,
	}, nil
}
