package storage

import "context"

// Service abstracts where uploaded images live. Implementations return a
// public URL for the stored object.
type Service interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
