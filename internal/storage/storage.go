// Package storage persists return-evidence and incident photos. The
// interface is small enough that a cloud object store can replace the local
// implementation without touching callers.
package storage

import (
	"context"
	"io"
)

// Store is the photo storage backend.
type Store interface {
	// Save writes the object under key, overwriting any existing object.
	Save(ctx context.Context, key string, contentType string, r io.Reader) error

	// Open returns the object for reading. Callers close the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether the object is present and its size in bytes.
	Exists(ctx context.Context, key string) (bool, int64, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a fetchable URL for the object.
	URL(key string) string
}
