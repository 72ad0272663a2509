package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/phrazzld/scry-match/internal/store"
	"github.com/spf13/afero"
)

const blobExt = ".json"

// BlobStore stores blobs as files under a directory of an afero filesystem.
type BlobStore struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

var _ store.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates the directory if needed and returns a store rooted at it.
func NewBlobStore(fsys afero.Fs, dir string) (*BlobStore, error) {
	if fsys == nil {
		panic("filesystem cannot be nil")
	}
	exists, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, store.NewStoreError("blob", "open", "failed to stat data directory", err)
	}
	if !exists {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, store.NewStoreError("blob", "open", "failed to create data directory", err)
		}
	}
	return &BlobStore{fs: fsys, dir: dir}, nil
}

// NewOSBlobStore is NewBlobStore on the host filesystem.
func NewOSBlobStore(dir string) (*BlobStore, error) {
	return NewBlobStore(afero.NewOsFs(), dir)
}

func (s *BlobStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: blob key %q", store.ErrInvalidEntity, key)
	}
	return filepath.Join(s.dir, key+blobExt), nil
}

// Get implements store.BlobStore.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrBlobNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("blob", "get", "failed to read blob", err)
	}
	return data, nil
}

// Put implements store.BlobStore.
func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := afero.TempFile(s.fs, s.dir, key+".*.tmp")
	if err != nil {
		return store.NewStoreError("blob", "put", "failed to create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return store.NewStoreError("blob", "put", "failed to write blob", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return store.NewStoreError("blob", "put", "failed to sync blob", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return store.NewStoreError("blob", "put", "failed to close blob", err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return store.NewStoreError("blob", "put", "failed to replace blob", err)
	}
	return nil
}
