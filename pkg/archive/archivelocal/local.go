// Package archivelocal archives raw messages on local disk.
package archivelocal

import (
	"context"
	"os"
	"path/filepath"

	"github.com/postwave/postwave/pkg/errx"
)

// LocalStore writes each message under a base directory, with the archive
// key as the relative path.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates the store, creating the base directory if needed.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errx.Wrap(err, "failed to create archive directory", errx.TypeInternal)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errx.Wrap(err, "failed to resolve archive directory", errx.TypeInternal)
	}
	return &LocalStore{basePath: abs}, nil
}

// Store writes one message blob.
func (s *LocalStore) Store(ctx context.Context, key string, data []byte) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return errx.Wrap(err, "failed to create archive subdirectory", errx.TypeInternal)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return errx.Wrap(err, "failed to write archived message", errx.TypeInternal).
			WithDetail("key", key)
	}
	return nil
}
