package handlers

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"library-backend/application/ports"
	"library-backend/application/queries"
	"library-backend/domain/catalog"
	apperrors "library-backend/pkg/errors"
)

type fakeBookRepo struct {
	books []*catalog.Book
	saved []*catalog.Book
}

func (r *fakeBookRepo) Save(ctx context.Context, book *catalog.Book) error {
	r.saved = append(r.saved, book)
	r.books = append(r.books, book)
	return nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id string) (*catalog.Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NewNotFoundError("book")
}

func (r *fakeBookRepo) GetByFilename(ctx context.Context, filename string) (*catalog.Book, error) {
	for _, b := range r.books {
		if b.Filename == filename {
			return b, nil
		}
	}
	return nil, apperrors.NewNotFoundError("book")
}

func (r *fakeBookRepo) List(ctx context.Context, limit int32) ([]*catalog.Book, error) {
	if limit > 0 && int32(len(r.books)) > limit {
		return r.books[:limit], nil
	}
	return r.books, nil
}

func (r *fakeBookRepo) Search(ctx context.Context, query string, filter ports.SearchFilter) ([]*catalog.Book, error) {
	var out []*catalog.Book
	for _, b := range r.books {
		if !b.Matches(query) {
			continue
		}
		if filter.Genre != "" && !strings.EqualFold(b.Genre, filter.Genre) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookRepo) Ping(ctx context.Context) error { return nil }

type fakeReviewRepo struct {
	reviews []*catalog.Review
}

func (r *fakeReviewRepo) Put(ctx context.Context, review *catalog.Review) error {
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) Get(ctx context.Context, bookID, userID string) (*catalog.Review, error) {
	for _, rev := range r.reviews {
		if rev.BookID == bookID && rev.UserID == userID {
			return rev, nil
		}
	}
	return nil, apperrors.NewNotFoundError("review")
}

func (r *fakeReviewRepo) ListByBook(ctx context.Context, bookID string) ([]*catalog.Review, error) {
	var out []*catalog.Review
	for _, rev := range r.reviews {
		if rev.BookID == bookID {
			out = append(out, rev)
		}
	}
	return out, nil
}

type fakeObjectStore struct {
	entries map[string]ports.ObjectEntry
}

func (s *fakeObjectStore) List(ctx context.Context, prefix string) ([]ports.ObjectEntry, error) {
	var out []ports.ObjectEntry
	for key, entry := range s.entries {
		if strings.HasPrefix(key, prefix) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *fakeObjectStore) Head(ctx context.Context, key string) (*ports.ObjectEntry, error) {
	if entry, ok := s.entries[key]; ok {
		return &entry, nil
	}
	return nil, apperrors.NewNotFoundError("object")
}

func (s *fakeObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.entries[key]
	return ok, nil
}

func (s *fakeObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	return nil, apperrors.NewNotFoundError("object")
}

func (s *fakeObjectStore) Upload(ctx context.Context, key string, body []byte, contentType, cacheControl string) error {
	return nil
}

func (s *fakeObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://bucket.example.com/" + key, nil
}

func (s *fakeObjectStore) Ping(ctx context.Context) error { return nil }

func mustBook(t *testing.T, filename, title, author, genre string) *catalog.Book {
	t.Helper()
	book, err := catalog.NewBook(filename, title, author, genre, "English")
	require.NoError(t, err)
	return book
}

func TestListBooksFromCatalog(t *testing.T) {
	repo := &fakeBookRepo{books: []*catalog.Book{
		mustBook(t, "Jane Austen by Pride and Prejudice.pdf", "Pride and Prejudice", "Jane Austen", "Fiction"),
		mustBook(t, "Dune - Frank Herbert.pdf", "Dune", "Frank Herbert", "Science Fiction"),
	}}
	store := &fakeObjectStore{entries: map[string]ports.ObjectEntry{
		"books/Dune - Frank Herbert.pdf": {
			Key:          "books/Dune - Frank Herbert.pdf",
			Size:         2048,
			LastModified: time.Now(),
			ContentType:  "application/pdf",
		},
	}}
	handler := NewCatalogHandler(repo, &fakeReviewRepo{}, store, "books/", zap.NewNop())

	result, err := handler.ListBooks(context.Background(), queries.ListBooksQuery{})
	require.NoError(t, err)

	assert.Equal(t, "catalog", result.Source)
	assert.Equal(t, 2, result.Count)

	// Missing object metadata was filled in from the bucket.
	for _, book := range result.Books {
		if book.Filename == "Dune - Frank Herbert.pdf" {
			assert.EqualValues(t, 2048, book.ObjectInfo.Size)
		}
	}
}

func TestListBooksPopulatesFromStorageWhenEmpty(t *testing.T) {
	repo := &fakeBookRepo{}
	store := &fakeObjectStore{entries: map[string]ports.ObjectEntry{
		"books/Agatha Christie by The Mysterious Affair at Styles.pdf": {
			Key:  "books/Agatha Christie by The Mysterious Affair at Styles.pdf",
			Size: 1024,
		},
		"books/notes.txt": {
			Key:  "books/notes.txt",
			Size: 10,
		},
	}}
	handler := NewCatalogHandler(repo, &fakeReviewRepo{}, store, "books/", zap.NewNop())

	result, err := handler.ListBooks(context.Background(), queries.ListBooksQuery{})
	require.NoError(t, err)

	assert.Equal(t, "storage", result.Source)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "The Mysterious Affair at Styles", result.Books[0].Title)
	assert.Equal(t, "Agatha Christie", result.Books[0].Author)

	// Discovered books were persisted for the next request.
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "Agatha Christie by The Mysterious Affair at Styles.pdf", repo.saved[0].Filename)
}

func TestSearchBooks(t *testing.T) {
	repo := &fakeBookRepo{books: []*catalog.Book{
		mustBook(t, "Jane Austen by Pride and Prejudice.pdf", "Pride and Prejudice", "Jane Austen", "Fiction"),
		mustBook(t, "Dune - Frank Herbert.pdf", "Dune", "Frank Herbert", "Science Fiction"),
	}}
	handler := NewCatalogHandler(repo, &fakeReviewRepo{}, &fakeObjectStore{}, "books/", zap.NewNop())

	result, err := handler.SearchBooks(context.Background(), queries.SearchBooksQuery{Query: "dune"})
	require.NoError(t, err)

	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Dune", result.Books[0].Title)
	assert.Equal(t, "catalog", result.Source)
}

func TestSearchBooksNoCriteriaReturnsFullCatalog(t *testing.T) {
	repo := &fakeBookRepo{books: []*catalog.Book{
		mustBook(t, "Jane Austen by Pride and Prejudice.pdf", "Pride and Prejudice", "Jane Austen", "Fiction"),
		mustBook(t, "Dune - Frank Herbert.pdf", "Dune", "Frank Herbert", "Science Fiction"),
	}}
	handler := NewCatalogHandler(repo, &fakeReviewRepo{}, &fakeObjectStore{}, "books/", zap.NewNop())

	query := queries.SearchBooksQuery{}
	require.NoError(t, query.Validate())

	result, err := handler.SearchBooks(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
}

func TestGetBookWithReviews(t *testing.T) {
	book := mustBook(t, "Dune - Frank Herbert.pdf", "Dune", "Frank Herbert", "Science Fiction")
	require.NoError(t, book.ApplyRating(5, 0))
	require.NoError(t, book.ApplyRating(3, 0))

	review, err := catalog.NewReview(book.ID, "user-1", "Reader", 5, "A classic.")
	require.NoError(t, err)

	repo := &fakeBookRepo{books: []*catalog.Book{book}}
	reviews := &fakeReviewRepo{reviews: []*catalog.Review{review}}
	handler := NewCatalogHandler(repo, reviews, &fakeObjectStore{}, "books/", zap.NewNop())

	result, err := handler.GetBook(context.Background(), queries.GetBookQuery{BookID: book.ID})
	require.NoError(t, err)

	assert.Equal(t, book.ID, result.Book.ID)
	require.Len(t, result.Reviews, 1)
	assert.InDelta(t, 4.0, result.AverageRating, 0.001)
}

func TestGetBookNotFound(t *testing.T) {
	handler := NewCatalogHandler(&fakeBookRepo{}, &fakeReviewRepo{}, &fakeObjectStore{}, "books/", zap.NewNop())

	_, err := handler.GetBook(context.Background(), queries.GetBookQuery{BookID: "missing"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListGenresMergesCatalogGenres(t *testing.T) {
	repo := &fakeBookRepo{books: []*catalog.Book{
		mustBook(t, "a.pdf", "A", "Author", "Cyberpunk Noir"),
	}}
	handler := NewCatalogHandler(repo, &fakeReviewRepo{}, &fakeObjectStore{}, "books/", zap.NewNop())

	result, err := handler.ListGenres(context.Background(), queries.ListGenresQuery{})
	require.NoError(t, err)

	assert.Contains(t, result.Genres, "Cyberpunk Noir")
	assert.Contains(t, result.Genres, "Fiction")
	assert.True(t, sort.StringsAreSorted(result.Genres))
}
