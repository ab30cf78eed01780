package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/application/ports"
	"library-backend/domain/catalog"
	"library-backend/infrastructure/di"
	apperrors "library-backend/pkg/errors"
)

type fakeBookRepo struct {
	byFilename map[string]*catalog.Book
	saves      int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{byFilename: make(map[string]*catalog.Book)}
}

func (r *fakeBookRepo) Save(ctx context.Context, book *catalog.Book) error {
	r.byFilename[book.Filename] = book
	r.saves++
	return nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id string) (*catalog.Book, error) {
	for _, b := range r.byFilename {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NewNotFoundError("book")
}

func (r *fakeBookRepo) GetByFilename(ctx context.Context, filename string) (*catalog.Book, error) {
	if b, ok := r.byFilename[filename]; ok {
		return b, nil
	}
	return nil, apperrors.NewNotFoundError("book")
}

func (r *fakeBookRepo) List(ctx context.Context, limit int32) ([]*catalog.Book, error) {
	out := make([]*catalog.Book, 0, len(r.byFilename))
	for _, b := range r.byFilename {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookRepo) Search(ctx context.Context, query string, filter ports.SearchFilter) ([]*catalog.Book, error) {
	return nil, nil
}

func (r *fakeBookRepo) Ping(ctx context.Context) error { return nil }

type fakeStore struct {
	entries []ports.ObjectEntry
}

func (s *fakeStore) List(ctx context.Context, prefix string) ([]ports.ObjectEntry, error) {
	return s.entries, nil
}

func (s *fakeStore) Head(ctx context.Context, key string) (*ports.ObjectEntry, error) {
	return nil, apperrors.NewNotFoundError("object")
}

func (s *fakeStore) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (s *fakeStore) Download(ctx context.Context, key string) ([]byte, error) {
	return nil, apperrors.NewNotFoundError("object")
}

func (s *fakeStore) Upload(ctx context.Context, key string, body []byte, contentType, cacheControl string) error {
	return nil
}

func (s *fakeStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", nil
}

func (s *fakeStore) Ping(ctx context.Context) error { return nil }

func TestMigrateFromBucketIsIdempotent(t *testing.T) {
	repo := newFakeBookRepo()
	container := &di.Container{
		BookRepo: repo,
		Store: &fakeStore{entries: []ports.ObjectEntry{
			{Key: "books/Dune - Frank Herbert.pdf"},
			{Key: "books/Jane Austen by Pride and Prejudice.pdf"},
			{Key: "books/notes.txt"},
		}},
	}

	require.NoError(t, migrateFromBucket(context.Background(), container, "books/"))
	assert.Equal(t, 2, repo.saves)
	assert.Len(t, repo.byFilename, 2)

	// A second run finds every filename already present and saves nothing.
	require.NoError(t, migrateFromBucket(context.Background(), container, "books/"))
	assert.Equal(t, 2, repo.saves)
	assert.Len(t, repo.byFilename, 2)
}

func TestMigrateFromSeedSkipsExisting(t *testing.T) {
	seed := `- filename: "Dune - Frank Herbert.pdf"
  title: "Dune"
  author: "Frank Herbert"
  genre: "Science Fiction"
  language: "English"
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	repo := newFakeBookRepo()
	container := &di.Container{BookRepo: repo}

	require.NoError(t, migrateFromSeed(context.Background(), container, path))
	assert.Equal(t, 1, repo.saves)

	require.NoError(t, migrateFromSeed(context.Background(), container, path))
	assert.Equal(t, 1, repo.saves)
}

func TestBookExists(t *testing.T) {
	repo := newFakeBookRepo()
	book := catalog.BookFromFilename("Dune - Frank Herbert.pdf")
	require.NotNil(t, book)
	require.NoError(t, repo.Save(context.Background(), book))

	container := &di.Container{BookRepo: repo}

	exists, err := bookExists(context.Background(), container, "Dune - Frank Herbert.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = bookExists(context.Background(), container, "missing.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}
