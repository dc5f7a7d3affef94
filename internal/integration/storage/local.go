// Package storage provides binary blob storage for receipt images.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalImageStore implements adapter.ImageStore on the local filesystem.
// Keys map to files under the base directory; references are served
// under the /uploads URL prefix.
type LocalImageStore struct {
	baseDir   string
	urlPrefix string
}

// NewLocalImageStore creates the base directory if needed and returns a store.
func NewLocalImageStore(baseDir string) (*LocalImageStore, error) {
	if baseDir == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{baseDir: baseDir, urlPrefix: "/uploads"}, nil
}

// Save stores image bytes under the given key and returns its reference.
func (s *LocalImageStore) Save(_ context.Context, key string, data []byte) (string, error) {
	cleaned, err := s.cleanKey(key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.baseDir, cleaned)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return s.urlPrefix + "/" + cleaned, nil
}

// Delete removes a stored image. Missing keys are not an error.
func (s *LocalImageStore) Delete(_ context.Context, key string) error {
	cleaned, err := s.cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, cleaned)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// cleanKey rejects keys that would escape the base directory.
func (s *LocalImageStore) cleanKey(key string) (string, error) {
	cleaned := filepath.Base(strings.TrimPrefix(key, s.urlPrefix+"/"))
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "", fmt.Errorf("invalid image key: %q", key)
	}
	return cleaned, nil
}
