package ports

import (
	"context"

	"library-backend/domain/catalog"
)

// SearchFilter narrows a catalog search. Zero values mean "no constraint".
type SearchFilter struct {
	Author   string
	Genre    string
	Language string
	Limit    int32
}

// BookRepository persists catalog entries.
type BookRepository interface {
	// Save upserts a book's metadata.
	Save(ctx context.Context, book *catalog.Book) error

	// GetByID returns the book or a NOT_FOUND error.
	GetByID(ctx context.Context, id string) (*catalog.Book, error)

	// GetByFilename resolves a book by its S3 filename, or NOT_FOUND.
	GetByFilename(ctx context.Context, filename string) (*catalog.Book, error)

	// List returns the full catalog, up to limit entries (0 = no limit).
	List(ctx context.Context, limit int32) ([]*catalog.Book, error)

	// Search matches query against title, author, and tags, then applies
	// the attribute filters.
	Search(ctx context.Context, query string, filter SearchFilter) ([]*catalog.Book, error)

	// Ping verifies the underlying table is reachable.
	Ping(ctx context.Context) error
}

// BookmarkRepository persists per-user bookmarks.
type BookmarkRepository interface {
	// Add is idempotent: bookmarking twice is not an error.
	Add(ctx context.Context, bookmark *catalog.Bookmark) error

	// Remove is idempotent: removing an absent bookmark is not an error.
	Remove(ctx context.Context, userID, bookID string) error

	ListByUser(ctx context.Context, userID string) ([]*catalog.Bookmark, error)
}

// ReviewRepository persists ratings and reviews, one per user per book.
type ReviewRepository interface {
	// Put upserts a user's review of a book.
	Put(ctx context.Context, review *catalog.Review) error

	// Get returns the user's review or a NOT_FOUND error.
	Get(ctx context.Context, bookID, userID string) (*catalog.Review, error)

	// ListByBook returns reviews ordered by reviewer.
	ListByBook(ctx context.Context, bookID string) ([]*catalog.Review, error)
}
