package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrUnsupportedImageType = errors.New("only image files are allowed (jpeg, jpg, png, gif)")

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// ImageStore persists uploaded food images and hands back an opaque
// reference. The donation core stores the reference verbatim and never
// interprets image bytes itself.
type ImageStore interface {
	Save(originalName string, data []byte) (string, error)
}

// LocalStore writes images to a directory on disk, served as /uploads.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the backing directory, for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedImageType
	}

	name := fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().UnixMilli(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return "/uploads/" + name, nil
}
