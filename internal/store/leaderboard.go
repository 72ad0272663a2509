package store

import (
	"context"

	"github.com/phrazzld/scry-match/internal/domain"
)

// LeaderboardStore defines the interface for reading and updating the
// best-N results.
// Version: 1.0
type LeaderboardStore interface {
	// Load returns the stored leaderboard.
	// Missing, unreadable or malformed data yields an empty leaderboard;
	// Load never fails.
	Load(ctx context.Context) domain.Leaderboard

	// Submit appends entry, sorts by score descending (stable), truncates to
	// capacity, persists the result and returns it.
	// If persisting fails, the new in-memory leaderboard is still returned
	// together with an error wrapping ErrPersistFailed.
	Submit(ctx context.Context, entry domain.ScoreEntry) (domain.Leaderboard, error)
}
