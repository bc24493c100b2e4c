// Package blob stores resume files on the local filesystem.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrTooLarge is returned when a write exceeds its byte limit.
var ErrTooLarge = errors.New("blob exceeds size limit")

// ErrInvalidPath is returned for keys that would escape the store root.
var ErrInvalidPath = errors.New("invalid blob path")

// Store is the blob persistence used by resume uploads.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, error)
	Delete(ctx context.Context, key string) error
}

// LocalStore keeps blobs under a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob root %s: %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

var _ Store = (*LocalStore)(nil)

func (s *LocalStore) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, clean), nil
}

// Put streams r into key, failing with ErrTooLarge once more than maxBytes
// arrive. A failed write leaves no file behind.
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, error) {
	path, err := s.resolve(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return 0, fmt.Errorf("failed to create blob dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(r, maxBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write blob: %w", err)
	}
	if n > maxBytes {
		return 0, ErrTooLarge
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("failed to finalize blob: %w", err)
	}
	return n, nil
}

// Delete removes key; a missing blob is not an error.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
