// Package storage provides object storage access for issue PDFs.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// ObjectStore defines the interface for issue PDF storage operations.
type ObjectStore interface {
	Upload(ctx context.Context, objectKey, contentType string, r io.Reader) (int64, error)
	SignedDownloadURL(objectKey string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, objectKey string) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// GCSStore implements ObjectStore on a Google Cloud Storage bucket.
// Issue PDFs are private; readers receive short-lived V4 signed URLs.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a new store backed by the named bucket. Credentials
// come from Application Default Credentials.
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: bucket,
	}, nil
}

// Upload writes the object and returns the number of bytes stored.
// An existing object with the same key is overwritten.
func (s *GCSStore) Upload(ctx context.Context, objectKey, contentType string, r io.Reader) (int64, error) {
	w := s.client.Bucket(s.bucket).Object(objectKey).NewWriter(ctx)
	w.ContentType = contentType

	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("storage: upload of %s failed: %w", objectKey, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("storage: upload of %s failed: %w", objectKey, err)
	}

	return n, nil
}

// SignedDownloadURL returns a V4 signed GET URL for the object.
func (s *GCSStore) SignedDownloadURL(objectKey string, ttl time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().UTC().Add(ttl),
	}

	u, err := s.client.Bucket(s.bucket).SignedURL(objectKey, opts)
	if err != nil {
		return "", fmt.Errorf("storage: signing URL for %s failed: %w", objectKey, err)
	}
	return u, nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (s *GCSStore) Delete(ctx context.Context, objectKey string) error {
	err := s.client.Bucket(s.bucket).Object(objectKey).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: delete of %s failed: %w", objectKey, err)
	}
	return nil
}

// HealthCheck verifies the bucket is reachable.
func (s *GCSStore) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := s.client.Bucket(s.bucket).Attrs(ctx)
	if err != nil {
		return fmt.Errorf("storage: bucket %s unavailable: %w", s.bucket, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
