package queries

import "errors"

// GetCoverQuery returns a cover image URL for a stored PDF. Force discards
// any existing cover and re-renders it from the document.
type GetCoverQuery struct {
	Filename string `json:"filename" validate:"required"`
	Force    bool   `json:"force"`
}

// Validate implements bus.Query.
func (q GetCoverQuery) Validate() error {
	if q.Filename == "" {
		return errors.New("filename is required")
	}
	return nil
}

// CoverResult is the result of GetCoverQuery.
type CoverResult struct {
	URL string `json:"url"`
}
