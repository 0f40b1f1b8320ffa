package repository

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("object not found")

// BlobStore persists uploaded image bytes under a flat key space.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}
