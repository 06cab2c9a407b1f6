package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/willy903/backintern/internal/pkg/logger"
)

// LocalStorage saves document files on the local filesystem. The generated
// stored name goes on the document row; the original file name is kept as
// metadata only.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// GenerateStoredName builds a collision-free stored file name keeping the
// original extension.
func GenerateStoredName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

// Save writes content under storedName and returns the number of bytes written.
func (ls *LocalStorage) Save(storedName string, content io.Reader) (int64, error) {
	dst := filepath.Join(ls.basePath, storedName)

	f, err := os.Create(dst)
	if err != nil {
		logger.Error().Err(err).Str("path", dst).Msg("Failed to create stored file")
		return 0, fmt.Errorf("failed to create stored file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, content)
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("failed to write stored file: %w", err)
	}

	return written, nil
}

// Open opens a stored file for reading.
func (ls *LocalStorage) Open(storedName string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(ls.basePath, storedName))
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (ls *LocalStorage) Remove(storedName string) error {
	err := os.Remove(filepath.Join(ls.basePath, storedName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stored file: %w", err)
	}
	return nil
}
