package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage stores uploaded files on disk under a base path. File refs are
// opaque relative names handed back to callers; only this package resolves
// them to paths.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save writes the file and returns its ref. Refs are uuid-based so original
// filenames never reach the filesystem.
func (s *LocalStorage) Save(src io.Reader, originalName string) (string, error) {
	ref := uuid.NewString() + filepath.Ext(originalName)

	dst, err := os.Create(filepath.Join(s.basePath, ref))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return ref, nil
}

// Path resolves a ref to an absolute path, refusing refs that escape the
// storage directory.
func (s *LocalStorage) Path(ref string) (string, error) {
	if ref == "" || filepath.Base(ref) != ref {
		return "", fmt.Errorf("invalid file ref: %q", ref)
	}
	return filepath.Join(s.basePath, ref), nil
}

func (s *LocalStorage) Remove(ref string) error {
	path, err := s.Path(ref)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
