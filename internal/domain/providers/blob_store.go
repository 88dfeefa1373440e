package providers

import (
	"context"
	"time"
)

// BlobObject describes a stored object returned by a prefix listing.
type BlobObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url"`
}

// BlobStore defines the interface for content-addressed binary storage.
type BlobStore interface {
	// Get downloads the object stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores body under key and returns the object's public location.
	Put(ctx context.Context, key string, body []byte, contentType string, public bool) (string, error)

	// List returns the objects whose keys start with prefix.
	List(ctx context.Context, prefix string) ([]BlobObject, error)
}
