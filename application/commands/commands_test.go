package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"library-backend/application/ports"
	"library-backend/domain/catalog"
	"library-backend/domain/events"
	apperrors "library-backend/pkg/errors"
)

type fakeBookRepo struct {
	books map[string]*catalog.Book
}

func newFakeBookRepo(books ...*catalog.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[string]*catalog.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Save(ctx context.Context, book *catalog.Book) error {
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id string) (*catalog.Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
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
	out := make([]*catalog.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookRepo) Search(ctx context.Context, query string, filter ports.SearchFilter) ([]*catalog.Book, error) {
	return nil, nil
}

func (r *fakeBookRepo) Ping(ctx context.Context) error { return nil }

type fakeReviewRepo struct {
	reviews map[string]*catalog.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*catalog.Review)}
}

func (r *fakeReviewRepo) Put(ctx context.Context, review *catalog.Review) error {
	r.reviews[review.BookID+"/"+review.UserID] = review
	return nil
}

func (r *fakeReviewRepo) Get(ctx context.Context, bookID, userID string) (*catalog.Review, error) {
	if rev, ok := r.reviews[bookID+"/"+userID]; ok {
		return rev, nil
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

type fakeBookmarkRepo struct {
	bookmarks map[string]*catalog.Bookmark
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: make(map[string]*catalog.Bookmark)}
}

func (r *fakeBookmarkRepo) Add(ctx context.Context, bookmark *catalog.Bookmark) error {
	key := bookmark.UserID + "/" + bookmark.BookID
	if _, exists := r.bookmarks[key]; exists {
		return nil
	}
	r.bookmarks[key] = bookmark
	return nil
}

func (r *fakeBookmarkRepo) Remove(ctx context.Context, userID, bookID string) error {
	delete(r.bookmarks, userID+"/"+bookID)
	return nil
}

func (r *fakeBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]*catalog.Bookmark, error) {
	var out []*catalog.Bookmark
	for _, b := range r.bookmarks {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeStore struct {
	uploads map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: make(map[string][]byte)}
}

func (s *fakeStore) List(ctx context.Context, prefix string) ([]ports.ObjectEntry, error) {
	return nil, nil
}

func (s *fakeStore) Head(ctx context.Context, key string) (*ports.ObjectEntry, error) {
	if body, ok := s.uploads[key]; ok {
		return &ports.ObjectEntry{Key: key, Size: int64(len(body))}, nil
	}
	return nil, apperrors.NewNotFoundError("object")
}

func (s *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.uploads[key]
	return ok, nil
}

func (s *fakeStore) Download(ctx context.Context, key string) ([]byte, error) {
	if body, ok := s.uploads[key]; ok {
		return body, nil
	}
	return nil, apperrors.NewNotFoundError("object")
}

func (s *fakeStore) Upload(ctx context.Context, key string, body []byte, contentType, cacheControl string) error {
	s.uploads[key] = body
	return nil
}

func (s *fakeStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://bucket.example.com/" + key, nil
}

func (s *fakeStore) Ping(ctx context.Context) error { return nil }

type capturingPublisher struct {
	published []events.DomainEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.published = append(p.published, event)
	return nil
}

func (p *capturingPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	p.published = append(p.published, batch...)
	return nil
}

func testBook(t *testing.T, id, filename, title, author string) *catalog.Book {
	t.Helper()
	book, err := catalog.NewBook(filename, title, author, "", "")
	require.NoError(t, err)
	book.ID = id
	return book
}

func TestUploadBookStoresFileBeforeCatalogEntry(t *testing.T) {
	repo := newFakeBookRepo()
	store := newFakeStore()
	publisher := &capturingPublisher{}
	handler := NewUploadBookHandler(repo, store, publisher, "books/", zap.NewNop())

	cmd := UploadBookCommand{
		BookID:   "book-1",
		UserID:   "user-1",
		Filename: "Dune - Frank Herbert.pdf",
		Content:  []byte("%PDF-1.4"),
	}
	require.NoError(t, handler.Handle(context.Background(), cmd))

	assert.Contains(t, store.uploads, "books/Dune - Frank Herbert.pdf")

	book, err := repo.GetByID(context.Background(), "book-1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "BookUploaded", publisher.published[0].GetEventType())
}

func TestUploadBookDuplicateFilename(t *testing.T) {
	existing := testBook(t, "book-1", "Dune - Frank Herbert.pdf", "Dune", "Frank Herbert")
	handler := NewUploadBookHandler(newFakeBookRepo(existing), newFakeStore(), &capturingPublisher{}, "books/", zap.NewNop())

	cmd := UploadBookCommand{
		BookID:   "book-2",
		UserID:   "user-1",
		Filename: "Dune - Frank Herbert.pdf",
		Content:  []byte("%PDF-1.4"),
	}
	err := handler.Handle(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestRateBookReplacesPreviousRating(t *testing.T) {
	book := testBook(t, "book-1", "Dune - Frank Herbert.pdf", "Dune", "Frank Herbert")
	repo := newFakeBookRepo(book)
	reviews := newFakeReviewRepo()
	handler := NewRateBookHandler(repo, reviews, &capturingPublisher{}, zap.NewNop())

	rate := func(rating int) {
		t.Helper()
		require.NoError(t, handler.Handle(context.Background(), RateBookCommand{
			BookID:   "book-1",
			UserID:   "user-1",
			UserName: "Reader",
			Rating:   rating,
		}))
	}

	rate(5)
	assert.Equal(t, 1, book.RatingCount)
	assert.InDelta(t, 5.0, book.AverageRating(), 0.001)

	// Rating again replaces the previous value instead of counting twice.
	rate(2)
	assert.Equal(t, 1, book.RatingCount)
	assert.InDelta(t, 2.0, book.AverageRating(), 0.001)

	stored, err := reviews.Get(context.Background(), "book-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Rating)
}

func TestRateBookUnknownBook(t *testing.T) {
	handler := NewRateBookHandler(newFakeBookRepo(), newFakeReviewRepo(), &capturingPublisher{}, zap.NewNop())

	err := handler.Handle(context.Background(), RateBookCommand{
		BookID: "missing",
		UserID: "user-1",
		Rating: 4,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBookmarkAddAndRemove(t *testing.T) {
	book := testBook(t, "book-1", "Dune - Frank Herbert.pdf", "Dune", "Frank Herbert")
	bookmarks := newFakeBookmarkRepo()
	handler := NewBookmarkHandler(bookmarks, newFakeBookRepo(book), zap.NewNop())

	add := AddBookmarkCommand{UserID: "user-1", BookID: "book-1"}
	require.NoError(t, handler.Handle(context.Background(), add))
	// Adding twice is idempotent.
	require.NoError(t, handler.Handle(context.Background(), add))

	list, err := bookmarks.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, handler.Handle(context.Background(), RemoveBookmarkCommand{UserID: "user-1", BookID: "book-1"}))
	list, err = bookmarks.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookmarkUnknownBook(t *testing.T) {
	handler := NewBookmarkHandler(newFakeBookmarkRepo(), newFakeBookRepo(), zap.NewNop())

	err := handler.Handle(context.Background(), AddBookmarkCommand{UserID: "user-1", BookID: "missing"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
