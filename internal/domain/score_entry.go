package domain

import (
	"fmt"
	"time"
)

// ScoreEntry records the result of one completed game.
type ScoreEntry struct {
	Moves          int       `json:"moves"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	Score          int       `json:"score"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewScoreEntry creates a validated entry stamped with the given time in UTC.
func NewScoreEntry(moves, elapsedSeconds, score int, now time.Time) (ScoreEntry, error) {
	entry := ScoreEntry{
		Moves:          moves,
		ElapsedSeconds: elapsedSeconds,
		Score:          score,
		Timestamp:      now.UTC(),
	}
	if err := entry.Validate(); err != nil {
		return ScoreEntry{}, err
	}
	return entry, nil
}

// Validate rejects negative counters.
func (e ScoreEntry) Validate() error {
	if e.Moves < 0 || e.ElapsedSeconds < 0 || e.Score < 0 {
		return fmt.Errorf("%w: moves=%d elapsed=%d score=%d",
			ErrInvalidScoreEntry, e.Moves, e.ElapsedSeconds, e.Score)
	}
	return nil
}

// FormatElapsed renders seconds as zero-padded MM:SS. Minutes keep growing
// past 99 rather than wrapping.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
