package covers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/application/ports"
	"library-backend/domain/catalog"
	"library-backend/domain/events"
	"library-backend/pkg/observability"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	presignExpiry   = 24 * time.Hour
	cacheTTL        = 12 * time.Hour
	coverCacheKey   = "cover:%s"
	coverCacheCtrl  = "public, max-age=31536000"
	coverContentTyp = "image/jpeg"
)

// Extractor implements ports.CoverExtractor. Covers are rendered from the
// first page of the stored PDF, resized, uploaded next to the books, and
// served through presigned URLs cached in Redis.
type Extractor struct {
	store       ports.ObjectStore
	cache       ports.Cache
	publisher   ports.EventPublisher
	metrics     *observability.Metrics
	tracer      *observability.Tracer
	booksPrefix string
	breaker     *gobreaker.CircuitBreaker
	logger      *zap.Logger
}

// NewExtractor creates a cover extractor. metrics and tracer may be nil.
func NewExtractor(
	store ports.ObjectStore,
	cache ports.Cache,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	booksPrefix string,
	logger *zap.Logger,
) *Extractor {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cover-extraction",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Extractor{
		store:       store,
		cache:       cache,
		publisher:   publisher,
		metrics:     metrics,
		tracer:      tracer,
		booksPrefix: booksPrefix,
		breaker:     breaker,
		logger:      logger,
	}
}

// CoverURL returns a presigned URL for the book's cover, extracting one
// from the PDF when no cover exists yet.
func (e *Extractor) CoverURL(ctx context.Context, filename string) (string, error) {
	cacheKey := fmt.Sprintf(coverCacheKey, filename)
	if cached, err := e.cache.Get(ctx, cacheKey); err == nil {
		return string(cached), nil
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		e.logger.Warn("cover cache lookup failed", zap.Error(err), zap.String("filename", filename))
	}

	coverKey := catalog.CoverObjectKey(filename)
	exists, err := e.store.Exists(ctx, coverKey)
	if err != nil {
		return "", err
	}
	if exists {
		url, err := e.store.PresignGet(ctx, coverKey, presignExpiry)
		if err != nil {
			return "", err
		}
		e.cacheURL(ctx, cacheKey, url)
		return url, nil
	}

	return e.Extract(ctx, filename)
}

// Extract renders a fresh cover from the PDF and uploads it, replacing any
// existing cover. A placeholder is generated when rendering fails.
func (e *Extractor) Extract(ctx context.Context, filename string) (string, error) {
	start := time.Now()
	coverKey := catalog.CoverObjectKey(filename)

	var cover []byte
	var rendered bool
	render := func(ctx context.Context) error {
		cover, rendered = e.renderCover(ctx, filename)
		if cover == nil {
			return fmt.Errorf("failed to produce cover for %s", filename)
		}
		return nil
	}

	var err error
	if e.tracer != nil {
		err = e.tracer.TraceFunction(ctx, "covers.render", render)
	} else {
		err = render(ctx)
	}
	if err != nil {
		return "", err
	}

	if err := e.store.Upload(ctx, coverKey, cover, coverContentTyp, coverCacheCtrl); err != nil {
		return "", err
	}

	url, err := e.store.PresignGet(ctx, coverKey, presignExpiry)
	if err != nil {
		return "", err
	}

	cacheKey := fmt.Sprintf(coverCacheKey, filename)
	e.cacheURL(ctx, cacheKey, url)

	if e.publisher != nil {
		event := events.NewCoverExtracted(filename, coverKey, !rendered)
		if err := e.publisher.Publish(ctx, event); err != nil {
			e.logger.Warn("failed to publish cover event", zap.Error(err), zap.String("filename", filename))
		}
	}

	if e.metrics != nil {
		e.metrics.Duration(ctx, "CoverExtractionTime", time.Since(start), map[string]string{
			"Rendered": fmt.Sprintf("%t", rendered),
		})
		e.metrics.Count(ctx, "CoversExtracted", 1, nil)
	}

	return url, nil
}

// renderCover renders the first PDF page, falling back to a placeholder.
// The boolean result reports whether a real page render succeeded.
func (e *Extractor) renderCover(ctx context.Context, filename string) ([]byte, bool) {
	result, err := e.breaker.Execute(func() (interface{}, error) {
		data, err := e.store.Download(ctx, e.booksPrefix+filename)
		if err != nil {
			return nil, err
		}

		img, err := RenderFirstPage(data)
		if err != nil {
			return nil, err
		}

		return EncodeCover(img)
	})
	if err == nil {
		return result.([]byte), true
	}

	e.logger.Warn("cover render failed, using placeholder",
		zap.Error(err),
		zap.String("filename", filename),
	)

	meta := catalog.ParseFilename(filename)
	placeholder, perr := Placeholder(meta.Title, meta.Author)
	if perr != nil {
		e.logger.Error("failed to draw placeholder", zap.Error(perr), zap.String("filename", filename))
		return nil, false
	}

	return placeholder, false
}

func (e *Extractor) cacheURL(ctx context.Context, key, url string) {
	if err := e.cache.Set(ctx, key, []byte(url), cacheTTL); err != nil {
		e.logger.Warn("failed to cache cover url", zap.Error(err), zap.String("key", key))
	}
}
