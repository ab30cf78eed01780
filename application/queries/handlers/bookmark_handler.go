package handlers

import (
	"context"
	"sort"

	"library-backend/application/ports"
	"library-backend/application/queries"
	apperrors "library-backend/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BookmarkHandler serves bookmark list queries.
type BookmarkHandler struct {
	bookmarkRepo ports.BookmarkRepository
	bookRepo     ports.BookRepository
	logger       *zap.Logger
}

// NewBookmarkHandler creates a new bookmark query handler.
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

// ListBookmarks returns the user's bookmarks newest first, each joined
// with its catalog entry. Bookmarks whose book has disappeared are kept
// with a nil Book so the client can offer cleanup.
func (h *BookmarkHandler) ListBookmarks(ctx context.Context, query queries.ListBookmarksQuery) (*queries.BookmarksResult, error) {
	bookmarks, err := h.bookmarkRepo.ListByUser(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	result := make([]queries.BookmarkedBook, len(bookmarks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(headConcurrency)
	for i, bookmark := range bookmarks {
		i, bookmark := i, bookmark
		result[i] = queries.BookmarkedBook{
			BookID:    bookmark.BookID,
			DateAdded: bookmark.DateAdded,
		}
		g.Go(func() error {
			book, err := h.bookRepo.GetByID(ctx, bookmark.BookID)
			if err != nil {
				if apperrors.IsNotFound(err) {
					return nil
				}
				return err
			}
			result[i].Book = book
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DateAdded.After(result[j].DateAdded)
	})

	return &queries.BookmarksResult{
		Bookmarks: result,
		Count:     len(result),
	}, nil
}
