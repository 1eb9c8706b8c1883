package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"inkpress/internal/errors"
)

// FileStore persists uploaded images in a flat directory under generated names.
type FileStore struct {
	dir string
}

// NewFileStore creates the upload directory if needed and returns a store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the upload directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a collision-resistant generated name,
// preserving the original extension, and returns that name. Files larger than
// maxSize bytes are rejected before anything touches disk.
func (s *FileStore) Save(file *multipart.FileHeader, maxSize int64) (string, error) {
	if file == nil {
		return "", errors.ErrFileRequired
	}
	if file.Size > maxSize {
		return "", errors.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file by name. A missing file is not an error, so
// best-effort cleanup callers can ignore stale references.
func (s *FileStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	// References may hold absolute URLs for externally hosted images; those have
	// nothing on disk to remove.
	if filepath.Base(name) != name {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
