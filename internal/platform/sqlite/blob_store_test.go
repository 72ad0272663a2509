package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/leaderboard"
	"github.com/phrazzld/scry-match/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, path string) *BlobStore {
	t.Helper()

	db, err := Open(context.Background(), path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBlobStore(db)
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "  ", nil)
	assert.Error(t, err)
}

func TestBlobStore_GetPut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestDB(t, filepath.Join(t.TempDir(), "scry.db"))

	_, err := s.Get(ctx, "mlMemoryHighScores")
	assert.ErrorIs(t, err, store.ErrBlobNotFound)

	require.NoError(t, s.Put(ctx, "mlMemoryHighScores", []byte(`[]`)))
	require.NoError(t, s.Put(ctx, "mlMemoryHighScores", []byte(`[{"score":1}]`)))

	got, err := s.Get(ctx, "mlMemoryHighScores")
	require.NoError(t, err)
	assert.Equal(t, `[{"score":1}]`, string(got))

	assert.ErrorIs(t, s.Put(ctx, "", []byte("x")), store.ErrInvalidEntity)
}

func TestBlobStore_SurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scry.db")

	db, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, NewBlobStore(db).Put(ctx, "k", []byte("v")))
	require.NoError(t, db.Close())

	// Migrations are idempotent on an existing database.
	s := openTestDB(t, path)
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestBlobStore_BacksLeaderboard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scry.db")

	svc := leaderboard.NewService(openTestDB(t, path), leaderboard.DefaultKey, 5, nil)
	entry, err := domain.NewScoreEntry(12, 61, 825, time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, entry)
	require.NoError(t, err)

	reloaded := leaderboard.NewService(openTestDB(t, path), leaderboard.DefaultKey, 5, nil).Load(ctx)
	assert.Equal(t, []int{825}, reloaded.Scores())
}
