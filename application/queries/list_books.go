package queries

import (
	"errors"

	"library-backend/domain/catalog"
)

// ListBooksQuery returns the catalog ordered by title.
type ListBooksQuery struct {
	Limit int32 `json:"limit" validate:"gte=0"`
}

// Validate implements bus.Query.
func (q ListBooksQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

// SearchBooksQuery filters the catalog by free text and attributes.
type SearchBooksQuery struct {
	Query    string `json:"query"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	Language string `json:"language"`
	Limit    int32  `json:"limit" validate:"gte=0"`
}

// Validate implements bus.Query. All criteria empty is valid and returns
// the full catalog.
func (q SearchBooksQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

// BooksResult is the result of list and search queries. Source reports
// where the entries came from: "catalog" for the database, "storage" when
// the catalog was populated from the bucket on the fly.
type BooksResult struct {
	Books  []*catalog.Book `json:"books"`
	Count  int             `json:"count"`
	Source string          `json:"source"`
}
