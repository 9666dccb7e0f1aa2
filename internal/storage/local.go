package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStore implements BlobStore on the local filesystem. Blobs are sharded
// into year/month subdirectories and named with a uuid to avoid collisions
// between uploads sharing an original filename.
type LocalStore struct {
	root string
	now  func() time.Time
}

// NewLocalStore creates a LocalStore rooted at dir. The directory is created
// if it does not exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "hiretrack-cvs")
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &LocalStore{root: dir, now: time.Now}, nil
}

// Root returns the storage root directory.
func (s *LocalStore) Root() string {
	return s.root
}

// Save stores the blob under a generated name and returns its metadata.
func (s *LocalStore) Save(ctx context.Context, originalName string, data io.Reader) (*StoredFile, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	now := s.now()
	dir := filepath.Join(s.root, fmt.Sprintf("%d", now.Year()), fmt.Sprintf("%02d", now.Month()))
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create shard directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(dir, uuid.New().String()+ext)

	f, err := os.Create(path) // #nosec G304 - path is derived from the storage root
	if err != nil {
		return nil, fmt.Errorf("create blob file: %w", err)
	}

	size, err := io.Copy(f, data)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write blob file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close blob file: %w", err)
	}

	return &StoredFile{
		Path:     path,
		Size:     size,
		MimeType: mimeTypeForExtension(ext),
	}, nil
}

// Delete removes a blob. An already-absent blob is treated as deleted.
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob file: %w", err)
	}
	return nil
}

// Exists checks if a blob is present at the given path.
func (s *LocalStore) Exists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat blob file: %w", err)
	}
	return true, nil
}

// mimeTypeForExtension maps the allowed CV extensions to MIME types.
func mimeTypeForExtension(ext string) string {
	switch ext {
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
