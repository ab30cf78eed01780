package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookDefaults(t *testing.T) {
	book, err := NewBook("test.pdf", "Test Title", "", "", "")
	require.NoError(t, err)

	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "test.pdf", book.Filename)
	assert.Equal(t, "Test Title", book.Title)
	assert.Equal(t, UnknownAuthor, book.Author)
	assert.Equal(t, DefaultGenre, book.Genre)
	assert.Equal(t, DefaultLanguage, book.Language)
	assert.False(t, book.CreatedAt.IsZero())
}

func TestNewBookValidation(t *testing.T) {
	_, err := NewBook("", "Title", "Author", "", "")
	assert.Error(t, err)

	_, err = NewBook("file.pdf", "", "Author", "", "")
	assert.Error(t, err)
}

func TestBookFromFilename(t *testing.T) {
	book := BookFromFilename("Dracula - Bram Stoker.pdf")
	require.NotNil(t, book)
	assert.Equal(t, "Dracula", book.Title)
	assert.Equal(t, "Bram Stoker", book.Author)
}

func TestApplyRating(t *testing.T) {
	book, err := NewBook("test.pdf", "Test", "Author", "", "")
	require.NoError(t, err)

	require.NoError(t, book.ApplyRating(4, 0))
	assert.Equal(t, 1, book.RatingCount)
	assert.Equal(t, 4, book.RatingSum)
	assert.InDelta(t, 4.0, book.AverageRating(), 0.001)

	require.NoError(t, book.ApplyRating(5, 0))
	assert.Equal(t, 2, book.RatingCount)
	assert.Equal(t, 9, book.RatingSum)

	// Replacing an existing rating keeps the count stable.
	require.NoError(t, book.ApplyRating(2, 5))
	assert.Equal(t, 2, book.RatingCount)
	assert.Equal(t, 6, book.RatingSum)
	assert.InDelta(t, 3.0, book.AverageRating(), 0.001)
}

func TestApplyRatingOutOfRange(t *testing.T) {
	book, err := NewBook("test.pdf", "Test", "Author", "", "")
	require.NoError(t, err)

	assert.Error(t, book.ApplyRating(0, 0))
	assert.Error(t, book.ApplyRating(6, 0))
}

func TestAverageRatingEmpty(t *testing.T) {
	book, err := NewBook("test.pdf", "Test", "Author", "", "")
	require.NoError(t, err)
	assert.Zero(t, book.AverageRating())
}

func TestMatches(t *testing.T) {
	book, err := NewBook("test.pdf", "A Brief History of Time", "Stephen Hawking", "Science", "")
	require.NoError(t, err)
	book.Description = "Cosmology for general readers"

	assert.True(t, book.Matches("history"))
	assert.True(t, book.Matches("HAWKING"))
	assert.True(t, book.Matches("cosmology"))
	assert.False(t, book.Matches("poetry"))
}

func TestNewReviewValidation(t *testing.T) {
	_, err := NewReview("book-1", "user-1", "Ann", 3, "fine")
	assert.NoError(t, err)

	_, err = NewReview("book-1", "user-1", "Ann", 0, "")
	assert.Error(t, err)

	_, err = NewReview("book-1", "user-1", "Ann", 6, "")
	assert.Error(t, err)

	_, err = NewReview("", "user-1", "Ann", 3, "")
	assert.Error(t, err)
}

func TestNewBookmark(t *testing.T) {
	bookmark, err := NewBookmark("user-1", "book-1")
	assert.NoError(t, err)
	assert.False(t, bookmark.DateAdded.IsZero())

	_, err = NewBookmark("", "book-1")
	assert.Error(t, err)
}
