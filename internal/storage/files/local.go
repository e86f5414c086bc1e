package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/service"
)

// LocalStorage writes uploads to a directory on disk. Used in development and
// tests; production deployments use S3Storage.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a storage rooted at baseDir.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// Store writes the upload under baseDir/folder with a unique name and returns
// the relative path.
func (s *LocalStorage) Store(_ context.Context, folder string, upload service.Upload) (string, error) {
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	name := uuid.New().String() + filepath.Ext(upload.Filename)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, upload.Content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return filepath.Join(folder, name), nil
}
