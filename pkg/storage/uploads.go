package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Errors reported for rejected uploads.
var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrFileTooLarge    = errors.New("image exceeds maximum size")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ImageStore persists uploaded images on disk under a base directory.
type ImageStore struct {
	baseDir string
	maxSize int64
}

// NewImageStore ensures the base directory exists and returns a handle.
func NewImageStore(baseDir string, maxSize int64) (*ImageStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &ImageStore{baseDir: baseDir, maxSize: maxSize}, nil
}

// Save validates and stores the uploaded image under the given subdirectory,
// returning the relative path to serve it from.
func (s *ImageStore) Save(fh *multipart.FileHeader, subdir string) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(fh.Header.Get("Content-Type"))]
	if !ok {
		return "", ErrUnsupportedType
	}
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	name := uuid.NewString() + ext
	rel := filepath.Join(subdir, name)
	path := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close() //nolint:errcheck

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close() //nolint:errcheck

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return "/" + filepath.ToSlash(filepath.Join("uploads", rel)), nil
}

// Delete removes a stored image if present.
func (s *ImageStore) Delete(rel string) error {
	rel = strings.TrimPrefix(rel, "/uploads/")
	path := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

// BaseDir exposes the directory served for static uploads.
func (s *ImageStore) BaseDir() string {
	return s.baseDir
}
