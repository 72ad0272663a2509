package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/scry-match/internal/config"
	"github.com/phrazzld/scry-match/internal/platform/logger"
	"github.com/phrazzld/scry-match/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		cfg    config.StorageConfig
		wantDB bool
	}{
		{name: "memory", cfg: config.StorageConfig{Driver: "memory"}},
		{name: "file", cfg: config.StorageConfig{Driver: "file", Path: filepath.Join(dir, "blobs")}},
		{name: "sqlite", cfg: config.StorageConfig{Driver: "sqlite", Path: filepath.Join(dir, "scry.db")}, wantDB: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, log := logger.NewTestLogger()
			ctx := context.Background()

			s, err := openStorage(ctx, tc.cfg, log)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, s.Close()) })
			assert.Equal(t, tc.wantDB, s.db != nil)

			_, err = s.blobs.Get(ctx, "mlMemoryHighScores")
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, s.blobs.Put(ctx, "mlMemoryHighScores", []byte("[]")))
			got, err := s.blobs.Get(ctx, "mlMemoryHighScores")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))
		})
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, log := logger.NewTestLogger()
	_, err := openStorage(context.Background(), config.StorageConfig{Driver: "redis"}, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}
