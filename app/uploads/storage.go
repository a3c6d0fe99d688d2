package uploads

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the upload size cap in bytes.
const MaxImageSize = 5 * 1024 * 1024

// allowedContentTypes maps accepted image content types to file extensions.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds size limit")
	ErrInvalidPath     = errors.New("invalid upload path")
)

// Storage persists uploaded images on disk under
// <root>/<client_id>/<date>/<uuid><ext>.
type Storage struct {
	root string
}

// NewStorage creates a new upload storage rooted at dir
func NewStorage(dir string) *Storage {
	return &Storage{root: dir}
}

// Save validates and writes one image, returning its storage-relative path.
func (s *Storage) Save(clientID, date, contentType string, data []byte) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}

	relative := filepath.Join(clientID, date, uuid.NewString()+ext)
	full := filepath.Join(s.root, relative)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return filepath.ToSlash(relative), nil
}

// ReadBlob loads a stored image by its storage-relative path.
func (s *Storage) ReadBlob(path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// AbsPath resolves a storage-relative path for serving.
func (s *Storage) AbsPath(path string) (string, error) {
	return s.resolve(path)
}

// resolve joins the path under the storage root, rejecting traversal out of
// it.
func (s *Storage) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if clean == "/" || strings.Contains(path, "..") {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, clean), nil
}
