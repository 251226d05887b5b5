package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalService stores objects on the local filesystem, for development.
type LocalService struct {
	dir       string
	publicURL string
}

// NewLocalService creates the backing directory if needed.
func NewLocalService(dir, publicURL string) (*LocalService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalService{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Put writes the object under the storage directory.
func (s *LocalService) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

// Delete removes the object; missing files are not an error.
func (s *LocalService) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
