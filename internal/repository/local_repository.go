package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// localRepository writes images into a directory that the HTTP server
// exposes as static files.
type localRepository struct {
	dir string
	log *zap.Logger
}

func NewLocalRepository(dir string, log *zap.Logger) BlobStore {
	return &localRepository{dir: dir, log: log}
}

func (r *localRepository) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(r.dir, key), nil
}

func (r *localRepository) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	dst, err := r.path(key)
	if err != nil {
		return err
	}

	// Write to a temp file first so readers never see a partial image.
	tmp, err := os.CreateTemp(r.dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if size >= 0 && written != size {
		return fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return err
	}

	r.log.Info("File stored locally",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", written))

	return nil
}

func (r *localRepository) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := r.path(key)
	if err != nil {
		return nil, ErrNotFound
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (r *localRepository) Exists(ctx context.Context, key string) (bool, error) {
	p, err := r.path(key)
	if err != nil {
		return false, nil
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
