// Package storage provides blob storage for uploaded CV files.
// It defines the BlobStore interface consumed by the application service and
// a local-disk implementation.
package storage

import (
	"context"
	"io"
)

// StoredFile describes a durably stored blob.
type StoredFile struct {
	Path     string
	Size     int64
	MimeType string
}

// BlobStore is the interface for CV blob storage.
type BlobStore interface {
	// Save stores the blob and returns its storage path, size and MIME type.
	// The original filename is used only to derive the extension.
	Save(ctx context.Context, originalName string, data io.Reader) (*StoredFile, error)

	// Delete removes a stored blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks if a blob is present at the given path.
	Exists(ctx context.Context, path string) (bool, error)
}
