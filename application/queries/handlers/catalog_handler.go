package handlers

import (
	"context"
	"sort"
	"strings"

	"library-backend/application/ports"
	"library-backend/application/queries"
	"library-backend/domain/catalog"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// headConcurrency bounds parallel metadata lookups against the bucket.
const headConcurrency = 8

// CatalogHandler serves catalog browse and search queries.
type CatalogHandler struct {
	bookRepo    ports.BookRepository
	reviewRepo  ports.ReviewRepository
	store       ports.ObjectStore
	booksPrefix string
	logger      *zap.Logger
}

// NewCatalogHandler creates a new catalog query handler.
func NewCatalogHandler(
	bookRepo ports.BookRepository,
	reviewRepo ports.ReviewRepository,
	store ports.ObjectStore,
	booksPrefix string,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		bookRepo:    bookRepo,
		reviewRepo:  reviewRepo,
		store:       store,
		booksPrefix: booksPrefix,
		logger:      logger,
	}
}

// ListBooks returns the catalog. When the database is empty the catalog is
// seeded from the PDFs already present in the bucket, so a freshly deployed
// service serves its library without a manual import.
func (h *CatalogHandler) ListBooks(ctx context.Context, query queries.ListBooksQuery) (*queries.BooksResult, error) {
	books, err := h.bookRepo.List(ctx, query.Limit)
	if err != nil {
		return nil, err
	}

	source := "catalog"
	if len(books) == 0 {
		books, err = h.populateFromStorage(ctx, query.Limit)
		if err != nil {
			return nil, err
		}
		source = "storage"
	}

	h.enrichObjectInfo(ctx, books)

	return &queries.BooksResult{
		Books:  books,
		Count:  len(books),
		Source: source,
	}, nil
}

// SearchBooks filters the catalog.
func (h *CatalogHandler) SearchBooks(ctx context.Context, query queries.SearchBooksQuery) (*queries.BooksResult, error) {
	books, err := h.bookRepo.Search(ctx, query.Query, ports.SearchFilter{
		Author:   query.Author,
		Genre:    query.Genre,
		Language: query.Language,
		Limit:    query.Limit,
	})
	if err != nil {
		return nil, err
	}

	h.enrichObjectInfo(ctx, books)

	return &queries.BooksResult{
		Books:  books,
		Count:  len(books),
		Source: "catalog",
	}, nil
}

// GetBook loads one book together with its reviews.
func (h *CatalogHandler) GetBook(ctx context.Context, query queries.GetBookQuery) (*queries.GetBookResult, error) {
	book, err := h.bookRepo.GetByID(ctx, query.BookID)
	if err != nil {
		return nil, err
	}

	reviews, err := h.reviewRepo.ListByBook(ctx, query.BookID)
	if err != nil {
		return nil, err
	}

	return &queries.GetBookResult{
		Book:          book,
		Reviews:       reviews,
		AverageRating: book.AverageRating(),
	}, nil
}

// ListGenres merges the standard genre set with every genre in the catalog.
func (h *CatalogHandler) ListGenres(ctx context.Context, _ queries.ListGenresQuery) (*queries.GenresResult, error) {
	books, err := h.bookRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, genre := range catalog.StandardGenres {
		seen[genre] = struct{}{}
	}
	for _, book := range books {
		if book.Genre != "" {
			seen[book.Genre] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for genre := range seen {
		genres = append(genres, genre)
	}
	sort.Strings(genres)

	return &queries.GenresResult{Genres: genres}, nil
}

// populateFromStorage seeds catalog entries from PDFs under the books
// prefix, deriving title and author from each filename.
func (h *CatalogHandler) populateFromStorage(ctx context.Context, limit int32) ([]*catalog.Book, error) {
	entries, err := h.store.List(ctx, h.booksPrefix)
	if err != nil {
		return nil, err
	}

	books := make([]*catalog.Book, 0, len(entries))
	for _, entry := range entries {
		filename := catalog.BaseFilename(entry.Key, h.booksPrefix)
		if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			continue
		}

		book := catalog.BookFromFilename(filename)
		if book == nil {
			continue
		}
		book.ObjectInfo = catalog.ObjectInfo{
			Size:         entry.Size,
			LastModified: entry.LastModified,
			ContentType:  entry.ContentType,
		}

		if err := h.bookRepo.Save(ctx, book); err != nil {
			h.logger.Warn("failed to persist discovered book",
				zap.Error(err),
				zap.String("filename", filename),
			)
		}

		books = append(books, book)
		if limit > 0 && int32(len(books)) >= limit {
			break
		}
	}

	h.logger.Info("catalog populated from storage", zap.Int("count", len(books)))
	return books, nil
}

// enrichObjectInfo fills in size and modification time from the bucket for
// books that lack it. Lookup failures leave the entry as-is.
func (h *CatalogHandler) enrichObjectInfo(ctx context.Context, books []*catalog.Book) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(headConcurrency)

	for _, book := range books {
		if book.ObjectInfo.Size > 0 {
			continue
		}
		book := book
		g.Go(func() error {
			entry, err := h.store.Head(ctx, h.booksPrefix+book.Filename)
			if err != nil {
				h.logger.Debug("object metadata lookup failed",
					zap.Error(err),
					zap.String("filename", book.Filename),
				)
				return nil
			}
			book.ObjectInfo = catalog.ObjectInfo{
				Size:         entry.Size,
				LastModified: entry.LastModified,
				ContentType:  entry.ContentType,
			}
			return nil
		})
	}

	_ = g.Wait()
}
