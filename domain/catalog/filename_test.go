package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		title    string
		author   string
	}{
		{
			name:     "author by title",
			filename: "Wallace Wattles by The Science of Getting Rich.pdf",
			title:    "The Science of Getting Rich",
			author:   "Wallace Wattles",
		},
		{
			name:     "title dash author",
			filename: "Pride and Prejudice - Jane Austen.pdf",
			title:    "Pride and Prejudice",
			author:   "Jane Austen",
		},
		{
			name:     "author comma title",
			filename: "Orwell, 1984.pdf",
			title:    "1984",
			author:   "Orwell",
		},
		{
			name:     "title with author in parentheses",
			filename: "Moby Dick (Herman Melville).pdf",
			title:    "Moby Dick",
			author:   "Herman Melville",
		},
		{
			name:     "no pattern falls back to whole name",
			filename: "SomeRandomBook.pdf",
			title:    "SomeRandomBook",
			author:   UnknownAuthor,
		},
		{
			name:     "uppercase extension",
			filename: "Moonstone - Wilkie Collins.PDF",
			title:    "Moonstone",
			author:   "Wilkie Collins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ParseFilename(tt.filename)
			assert.Equal(t, tt.title, meta.Title)
			assert.Equal(t, tt.author, meta.Author)
		})
	}
}

func TestBaseFilename(t *testing.T) {
	assert.Equal(t, "book.pdf", BaseFilename("books/book.pdf", "books/"))
	assert.Equal(t, "book.pdf", BaseFilename("book.pdf", "books/"))
}

func TestCoverObjectKey(t *testing.T) {
	assert.Equal(t, "covers/book.jpg", CoverObjectKey("book.pdf"))
	assert.Equal(t, "covers/book.jpg", CoverObjectKey("book.PDF"))
}
