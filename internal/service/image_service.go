package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mypaws/adoption-service/internal/imaging"
	"github.com/mypaws/adoption-service/internal/storage"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// ImageService processes uploads (resize + WebP re-encode) and stores them.
type ImageService struct {
	processor *imaging.Processor
	store     storage.Service
	maxBytes  int64
}

// NewImageService constructs the service.
func NewImageService(processor *imaging.Processor, store storage.Service, maxBytes int64) *ImageService {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &ImageService{processor: processor, store: store, maxBytes: maxBytes}
}

// UploadResult describes a stored image.
type UploadResult struct {
	Key  string
	URL  string
	Size int
}

// Upload compresses the raw bytes and writes the WebP result under a
// date-partitioned random key.
func (s *ImageService) Upload(ctx context.Context, userID string, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("empty upload")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.NewValidationError(fmt.Sprintf("upload exceeds %d bytes", s.maxBytes))
	}
	compressed, err := s.processor.Compress(data)
	if err != nil {
		return nil, apperrors.NewValidationError("unsupported or corrupt image")
	}

	key := fmt.Sprintf("pets/%s/%s/%s.webp",
		time.Now().UTC().Format("2006/01"), userID, uuid.NewString())
	url, err := s.store.Put(ctx, key, compressed, "image/webp")
	if err != nil {
		return nil, err
	}
	return &UploadResult{Key: key, URL: url, Size: len(compressed)}, nil
}

// Remove deletes a stored image by key.
func (s *ImageService) Remove(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
