package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// Storage keeps uploaded files on the local filesystem under a single
// directory. Keys are "<id>.<ext>" so a document can be located later by its
// ID alone, whatever extension it was uploaded with.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

// Save writes the reader's contents under key and returns the absolute path
// of the stored file.
func (s *Storage) Save(_ context.Context, key string, data io.Reader) (string, error) {
	path := filepath.Join(s.basePath, filepath.Base(key))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Find returns the path of the stored file whose name starts with keyPrefix
// followed by an extension separator.
func (s *Storage) Find(_ context.Context, keyPrefix string) (string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return "", fmt.Errorf("read upload dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, keyPrefix+".") || name == keyPrefix {
			return filepath.Join(s.basePath, name), nil
		}
	}
	return "", domain.WrapError(domain.ErrDocumentNotFound, "find upload", os.ErrNotExist)
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *Storage) Remove(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
