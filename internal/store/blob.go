package store

import "context"

// BlobStore defines a durable key-value store holding opaque byte blobs.
// Version: 1.0
type BlobStore interface {
	// Get returns the blob stored under key.
	// Returns ErrBlobNotFound if nothing has been stored under the key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous blob.
	// The write is durable once Put returns nil.
	Put(ctx context.Context, key string, value []byte) error
}
