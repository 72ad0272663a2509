package leaderboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/scry-match/internal/domain"
)

// record is the persisted shape of a ScoreEntry.
type record struct {
	Moves int    `json:"moves"`
	Time  int    `json:"time"`
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// dateLayouts are tried in order when reading a stored date. Boards written
// by browser clients carry locale dates such as "10/16/2026".
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"1/2/2006",
	"2.1.2006",
}

func toRecord(e domain.ScoreEntry) record {
	r := record{
		Moves: e.Moves,
		Time:  e.ElapsedSeconds,
		Score: e.Score,
	}
	if !e.Timestamp.IsZero() {
		r.Date = e.Timestamp.UTC().Format(time.RFC3339)
	}
	return r
}

// parseDate returns the zero time for dates in no known layout; the date is
// informational and never invalidates a record.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

func (r record) toEntry() (domain.ScoreEntry, error) {
	entry := domain.ScoreEntry{
		Moves:          r.Moves,
		ElapsedSeconds: r.Time,
		Score:          r.Score,
		Timestamp:      parseDate(r.Date),
	}
	if err := entry.Validate(); err != nil {
		return domain.ScoreEntry{}, err
	}
	return entry, nil
}

// Encode serializes a leaderboard to its persisted JSON form.
func Encode(board domain.Leaderboard) ([]byte, error) {
	records := make([]record, len(board))
	for i, e := range board {
		records[i] = toRecord(e)
	}
	return json.Marshal(records)
}

// Decode parses a persisted leaderboard. Malformed JSON, a field of the
// wrong type or a negative counter fails the whole blob; an unrecognized
// date only clears that entry's timestamp.
func Decode(data []byte, capacity int) (domain.Leaderboard, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidScoreEntry, err)
	}

	board := make(domain.Leaderboard, 0, len(records))
	for i, r := range records {
		entry, err := r.toEntry()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		board = append(board, entry)
	}
	return board.Normalize(capacity), nil
}
