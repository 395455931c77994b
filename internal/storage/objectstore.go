// Package storage defines the object store abstraction the CMS persists
// against. Implementations cover the Google Drive backend used in production
// and an in-memory store for tests and local development.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key         string    `json:"name"`
	ID          string    `json:"id"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UpdatedAt   time.Time `json:"updated"`
	Link        string    `json:"link,omitempty"`
}

// ObjectStore provides byte-blob persistence keyed by name. Keys may contain
// a single "prefix/" segment which implementations map to a sub-folder or
// key prefix.
type ObjectStore interface {
	// Get returns the full contents of the object at key.
	// Returns ErrNotFound if the object does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes data to key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the object at key.
	// Returns ErrNotFound if the object does not exist.
	Delete(ctx context.Context, key string) error

	// List returns metadata for all objects under prefix ("" for the root).
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Stat returns metadata for the object at key.
	// Returns ErrNotFound if the object does not exist.
	Stat(ctx context.Context, key string) (ObjectInfo, error)

	// Exists reports whether an object is present at key.
	Exists(ctx context.Context, key string) (bool, error)
}
