package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/config"
	"github.com/AakashShah07/Web-Development-Assesment/internal/domain"
	"github.com/AakashShah07/Web-Development-Assesment/internal/repository"
	"github.com/AakashShah07/Web-Development-Assesment/pkg/utils"
)

type ImageService interface {
	StoreImage(ctx context.Context, data []byte, originalName string) (*domain.Image, error)
	// Exists reports whether ref is a reference previously returned by StoreImage
	// whose bytes are still present.
	Exists(ctx context.Context, ref string) (bool, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

type imageService struct {
	blobs  repository.BlobStore
	prefix string
	upload config.UploadConfig
	log    *zap.Logger
}

func NewImageService(blobs repository.BlobStore, cfg *config.Config, log *zap.Logger) ImageService {
	return &imageService{
		blobs:  blobs,
		prefix: cfg.Storage.PublicPrefix,
		upload: cfg.Upload,
		log:    log,
	}
}

func (s *imageService) StoreImage(ctx context.Context, data []byte, originalName string) (*domain.Image, error) {
	if len(data) == 0 {
		return nil, domain.NewValidationError("image", "Image is required")
	}
	if int64(len(data)) > s.upload.MaxSize {
		return nil, domain.NewValidationError("image",
			fmt.Sprintf("Image must be at most %d bytes", s.upload.MaxSize))
	}

	contentType := utils.DetectContentType(data)
	if !utils.IsImageType(contentType) {
		return nil, domain.NewValidationError("image", "File is not an image")
	}

	// Names without an extension take the one of the sniffed type.
	ext := utils.NormalizedExt(originalName)
	if ext == "" {
		ext = utils.DetectExtension(data)
	}
	if ext == "" || !utils.IsAllowedExt(ext, s.upload.AllowedFormats) {
		return nil, domain.NewValidationError("image",
			"Unsupported file type, allowed: "+strings.Join(s.upload.AllowedFormats, ", "))
	}
	key := utils.ImageKey(ext)

	if err := s.blobs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, &domain.StorageError{Op: "store image", Err: err}
	}

	image := &domain.Image{
		Key:          key,
		OriginalName: originalName,
		Path:         utils.JoinURLPath(s.prefix, key),
		Size:         int64(len(data)),
		ContentType:  contentType,
		UploadedAt:   time.Now(),
	}

	s.log.Info("Image uploaded successfully",
		zap.String("key", key),
		zap.String("filename", originalName),
		zap.Int64("size", image.Size))

	return image, nil
}

// KeyFromRef extracts the storage key from a reference path, or returns
// false when ref is not under prefix.
func KeyFromRef(prefix, ref string) (string, bool) {
	p := strings.TrimRight(prefix, "/") + "/"
	if !strings.HasPrefix(ref, p) {
		return "", false
	}
	key := strings.TrimPrefix(ref, p)
	if key == "" || strings.Contains(key, "/") {
		return "", false
	}
	return key, true
}

func (s *imageService) Exists(ctx context.Context, ref string) (bool, error) {
	key, ok := KeyFromRef(s.prefix, ref)
	if !ok {
		return false, nil
	}
	found, err := s.blobs.Exists(ctx, key)
	if err != nil {
		return false, &domain.StorageError{Op: "check image", Err: err}
	}
	return found, nil
}

func (s *imageService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.blobs.Get(ctx, key)
}
