package ports

import (
	"context"
	"time"
)

// ObjectEntry describes a stored object.
type ObjectEntry struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// ObjectStore abstracts the S3 bucket backing the library: PDFs under the
// books/ prefix, cover images under covers/.
type ObjectStore interface {
	// List returns the objects under a prefix, skipping directory markers.
	List(ctx context.Context, prefix string) ([]ObjectEntry, error)

	// Head returns object metadata or a NOT_FOUND error.
	Head(ctx context.Context, key string) (*ObjectEntry, error)

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Download fetches the full object body.
	Download(ctx context.Context, key string) ([]byte, error)

	// Upload stores an object with the given content type and cache policy.
	Upload(ctx context.Context, key string, body []byte, contentType, cacheControl string) error

	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Ping verifies the bucket is reachable.
	Ping(ctx context.Context) error
}

// CoverExtractor produces a cover image URL for a book file, extracting and
// caching it when necessary.
type CoverExtractor interface {
	// CoverURL returns the cover URL, extracting on a cache/storage miss.
	CoverURL(ctx context.Context, filename string) (string, error)

	// Extract forces re-extraction even when a cover already exists.
	Extract(ctx context.Context, filename string) (string, error)
}
