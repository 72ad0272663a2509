package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-match/internal/store"
)

// BlobStore keeps blobs in a map.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ store.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates an empty BlobStore.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Get implements store.BlobStore.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.blobs[key]
	if !ok {
		return nil, store.ErrBlobNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put implements store.BlobStore.
func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte(nil), value...)
	return nil
}
