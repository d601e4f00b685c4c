package storage

import (
	"context"
	"io"
)

// ObjectStorage is the external collaborator hosting uploaded images. The
// service only needs the public URL back; it never reads the binary again.
type ObjectStorage interface {
	// Upload stores an object under key with the given content type.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns the publicly addressable URL for an object.
	GetURL(key string) string

	// EnsureBucket creates the bucket if it doesn't exist.
	EnsureBucket(ctx context.Context) error
}
