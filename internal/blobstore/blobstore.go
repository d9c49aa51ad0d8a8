package blobstore

import (
	"context"
	"io"
)

// BlobStore is the object-store port. Paths are hierarchical strings, e.g.
// users/{uid}/purchases/{fileName}.
type BlobStore interface {
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	// List returns the names of all blobs under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// Upload writes the blob and returns a public download URL for it.
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
}
