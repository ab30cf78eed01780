package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "library-backend/pkg/errors"
)

// Default values applied when metadata cannot be derived from a filename.
const (
	DefaultGenre    = "General"
	DefaultLanguage = "English"
	UnknownAuthor   = "Unknown"
)

// Book is the catalog entry for a single title. Metadata lives in DynamoDB;
// the PDF itself lives in S3 under the books/ prefix and is referenced by
// Filename. ObjectInfo is enriched from S3 at read time and never persisted.
type Book struct {
	ID          string   `json:"id"`
	Filename    string   `json:"filename"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genre       string   `json:"genre"`
	Language    string   `json:"language"`
	Year        int      `json:"year,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
	Description string   `json:"description,omitempty"`
	CoverKey    string   `json:"cover_key,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Rating aggregate, maintained alongside individual reviews.
	RatingCount int `json:"rating_count"`
	RatingSum   int `json:"rating_sum"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ObjectInfo ObjectInfo `json:"object_info,omitempty"`
}

// ObjectInfo carries S3 object metadata for the book file.
type ObjectInfo struct {
	Size         int64     `json:"size,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
}

// NewBook creates a catalog entry for an uploaded file.
func NewBook(filename, title, author, genre, language string) (*Book, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, pkgerrors.NewValidationError("filename cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if author == "" {
		author = UnknownAuthor
	}
	if genre == "" {
		genre = DefaultGenre
	}
	if language == "" {
		language = DefaultLanguage
	}

	now := time.Now().UTC()
	return &Book{
		ID:        uuid.New().String(),
		Filename:  filename,
		Title:     title,
		Author:    author,
		Genre:     genre,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// BookFromFilename builds a catalog entry using only what the filename
// parser can recover. Used when populating the catalog from an S3 listing.
func BookFromFilename(filename string) *Book {
	meta := ParseFilename(filename)
	book, _ := NewBook(filename, meta.Title, meta.Author, "", "")
	return book
}

// AverageRating returns the mean rating, or 0 when the book has no reviews.
func (b *Book) AverageRating() float64 {
	if b.RatingCount == 0 {
		return 0
	}
	return float64(b.RatingSum) / float64(b.RatingCount)
}

// ApplyRating folds a new or replaced rating into the aggregate. previous
// is 0 when the user had not rated this book before.
func (b *Book) ApplyRating(rating, previous int) error {
	if rating < MinRating || rating > MaxRating {
		return pkgerrors.NewValidationError("rating must be between 1 and 5")
	}
	if previous == 0 {
		b.RatingCount++
	} else {
		b.RatingSum -= previous
	}
	b.RatingSum += rating
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// Matches reports whether the book matches a free-text query against title,
// author, and description, case-insensitively. An empty query matches.
func (b *Book) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Description), q)
}

// CoverObjectKey returns the S3 key of the cover image derived from the
// book's filename: books stored as name.pdf map to covers/name.jpg.
func CoverObjectKey(filename string) string {
	name := strings.TrimSuffix(strings.TrimSuffix(filename, ".pdf"), ".PDF")
	return "covers/" + name + ".jpg"
}

// StandardGenres is the baseline genre set merged into genre listings even
// when no catalog entry carries them.
var StandardGenres = []string{
	"Fiction", "Non-Fiction", "Mystery", "Romance",
	"Science Fiction", "Biography", "History",
}
