package handlers

import (
	"context"

	"library-backend/application/ports"
	"library-backend/application/queries"

	"go.uber.org/zap"
)

// CoverHandler serves cover image queries.
type CoverHandler struct {
	extractor ports.CoverExtractor
	logger    *zap.Logger
}

// NewCoverHandler creates a new cover query handler.
func NewCoverHandler(extractor ports.CoverExtractor, logger *zap.Logger) *CoverHandler {
	return &CoverHandler{extractor: extractor, logger: logger}
}

// GetCover returns a URL for the book's cover image, rendering one from
// the PDF when necessary.
func (h *CoverHandler) GetCover(ctx context.Context, query queries.GetCoverQuery) (*queries.CoverResult, error) {
	var (
		url string
		err error
	)
	if query.Force {
		url, err = h.extractor.Extract(ctx, query.Filename)
	} else {
		url, err = h.extractor.CoverURL(ctx, query.Filename)
	}
	if err != nil {
		return nil, err
	}

	return &queries.CoverResult{URL: url}, nil
}
