package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/store"
)

// DefaultKey is the blob key the leaderboard is stored under.
const DefaultKey = "mlMemoryHighScores"

// Service implements store.LeaderboardStore over a BlobStore.
//
// The board is read from the blob once and then cached; the cached board is
// authoritative for the life of the process, including after failed writes.
type Service struct {
	blobs    store.BlobStore
	key      string
	capacity int
	logger   *slog.Logger

	mu     sync.Mutex
	board  domain.Leaderboard
	loaded bool
}

var _ store.LeaderboardStore = (*Service)(nil)

// NewService creates a leaderboard backed by blobs. An empty key or a
// non-positive capacity fall back to DefaultKey and
// domain.DefaultLeaderboardCapacity.
func NewService(blobs store.BlobStore, key string, capacity int, logger *slog.Logger) *Service {
	if blobs == nil {
		panic("blob store cannot be nil")
	}
	if key == "" {
		key = DefaultKey
	}
	if capacity < 1 {
		capacity = domain.DefaultLeaderboardCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		blobs:    blobs,
		key:      key,
		capacity: capacity,
		logger:   logger.With(slog.String("component", "leaderboard")),
	}
}

// Load returns the current leaderboard. It never fails: missing, unreadable
// or malformed data yields an empty board.
func (s *Service) Load(ctx context.Context) domain.Leaderboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked(ctx)
	return s.board.Normalize(s.capacity)
}

// Submit records entry and persists the resulting board. When the write
// fails the new board is still returned, with an error wrapping
// store.ErrPersistFailed.
func (s *Service) Submit(ctx context.Context, entry domain.ScoreEntry) (domain.Leaderboard, error) {
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked(ctx)
	s.board = s.board.Insert(entry, s.capacity)
	s.loaded = true
	board := s.board.Normalize(s.capacity)

	data, err := Encode(s.board)
	if err != nil {
		return board, fmt.Errorf("%w: encode: %w", store.ErrPersistFailed, err)
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return board, fmt.Errorf("%w: %w", store.ErrPersistFailed, err)
	}

	s.logger.DebugContext(ctx, "leaderboard persisted",
		slog.Int("entries", len(board)),
		slog.Int("score", entry.Score))
	return board, nil
}

func (s *Service) ensureLoadedLocked(ctx context.Context) {
	if s.loaded {
		return
	}

	data, err := s.blobs.Get(ctx, s.key)
	switch {
	case errors.Is(err, store.ErrBlobNotFound):
		s.board = nil
		s.loaded = true
		return
	case err != nil:
		// Unreadable storage is retried on the next call.
		s.logger.WarnContext(ctx, "failed to read leaderboard, using empty board",
			slog.String("key", s.key),
			slog.Any("error", err))
		s.board = nil
		return
	}

	board, err := Decode(data, s.capacity)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding malformed leaderboard",
			slog.String("key", s.key),
			slog.Any("error", err))
		board = nil
	}
	s.board = board
	s.loaded = true
}
