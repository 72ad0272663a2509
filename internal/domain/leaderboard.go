package domain

import "sort"

// DefaultLeaderboardCapacity is the number of results kept on the board.
const DefaultLeaderboardCapacity = 5

// Leaderboard is an ordered list of the best results, highest score first.
// Equal scores keep their insertion order, so the earlier result ranks higher.
type Leaderboard []ScoreEntry

// Insert returns a new leaderboard with entry appended, stably sorted by score
// descending and truncated to capacity. The receiver is not modified.
func (l Leaderboard) Insert(entry ScoreEntry, capacity int) Leaderboard {
	out := make(Leaderboard, 0, len(l)+1)
	out = append(out, l...)
	out = append(out, entry)
	return out.normalize(capacity)
}

// Normalize re-sorts and truncates a board rebuilt from storage.
func (l Leaderboard) Normalize(capacity int) Leaderboard {
	out := make(Leaderboard, len(l))
	copy(out, l)
	return out.normalize(capacity)
}

func (l Leaderboard) normalize(capacity int) Leaderboard {
	if capacity < 1 {
		capacity = DefaultLeaderboardCapacity
	}
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Score > l[j].Score
	})
	if len(l) > capacity {
		l = l[:capacity]
	}
	return l
}

// Scores returns just the score column, mostly for display and tests.
func (l Leaderboard) Scores() []int {
	scores := make([]int, len(l))
	for i, e := range l {
		scores[i] = e.Score
	}
	return scores
}
