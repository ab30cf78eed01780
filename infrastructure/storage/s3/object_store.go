package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"library-backend/application/ports"
	apperrors "library-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ObjectStore implements ports.ObjectStore against an S3 bucket.
type ObjectStore struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	logger    *zap.Logger
}

// NewObjectStore creates a new ObjectStore for the given bucket.
func NewObjectStore(client *s3.Client, bucket string, logger *zap.Logger) ports.ObjectStore {
	return &ObjectStore{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		logger:    logger,
	}
}

func retryPolicy(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxElapsedTime = 10 * time.Second
	return backoff.WithContext(policy, ctx)
}

// List returns entries under the given prefix, skipping directory markers.
func (s *ObjectStore) List(ctx context.Context, prefix string) ([]ports.ObjectEntry, error) {
	entries := make([]ports.ObjectEntry, 0)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewExternalError("s3", fmt.Errorf("list %q: %w", prefix, err))
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			entries = append(entries, ports.ObjectEntry{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	return entries, nil
}

// Head returns metadata for a single object.
func (s *ObjectStore) Head(ctx context.Context, key string) (*ports.ObjectEntry, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("object %s", key))
		}
		return nil, apperrors.NewExternalError("s3", fmt.Errorf("head %q: %w", key, err))
	}

	return &ports.ObjectEntry{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		LastModified: aws.ToTime(out.LastModified),
		ContentType:  aws.ToString(out.ContentType),
	}, nil
}

// Exists reports whether the object exists.
func (s *ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Head(ctx, key)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Download reads the full object body, retrying transient failures.
func (s *ObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	var data []byte

	operation := func() error {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if isNotFound(err) {
				return backoff.Permanent(apperrors.NewNotFoundError(fmt.Sprintf("object %s", key)))
			}
			return err
		}
		defer out.Body.Close()

		data, err = io.ReadAll(out.Body)
		return err
	}

	if err := backoff.Retry(operation, retryPolicy(ctx)); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		s.logger.Error("failed to download object", zap.Error(err), zap.String("key", key))
		return nil, apperrors.NewExternalError("s3", fmt.Errorf("download %q: %w", key, err))
	}

	return data, nil
}

// Upload writes an object, retrying transient failures.
func (s *ObjectStore) Upload(ctx context.Context, key string, body []byte, contentType, cacheControl string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}

	operation := func() error {
		input.Body = bytes.NewReader(body)
		_, err := s.client.PutObject(ctx, input)
		return err
	}

	if err := backoff.Retry(operation, retryPolicy(ctx)); err != nil {
		s.logger.Error("failed to upload object", zap.Error(err), zap.String("key", key))
		return apperrors.NewExternalError("s3", fmt.Errorf("upload %q: %w", key, err))
	}

	return nil
}

// PresignGet returns a time-limited download URL for an object.
func (s *ObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", apperrors.NewExternalError("s3", fmt.Errorf("presign %q: %w", key, err))
	}
	return req.URL, nil
}

// Ping verifies the bucket is reachable.
func (s *ObjectStore) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return apperrors.NewUnavailableError("s3").WithCause(err)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	// HeadObject reports 404 through the generic API error.
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}
