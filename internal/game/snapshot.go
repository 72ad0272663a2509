package game

import (
	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
)

// CardView is a card as the player currently sees it.
type CardView struct {
	ID      string
	PairID  string
	Face    domain.Face
	Content string
	Icon    string
	Flipped bool
	Matched bool
}

// Snapshot is a point-in-time read model of a session.
type Snapshot struct {
	ID             uuid.UUID
	Status         Status
	Cards          []CardView
	Moves          int
	ElapsedSeconds int
	MatchedPairs   int
	TotalPairs     int
	Locked         bool
	// Score is set once the game is won and its entry saved.
	Score *domain.ScoreEntry
}

// Won reports whether every pair has been matched.
func (s Snapshot) Won() bool {
	return s.Status == StatusWon
}

// Elapsed formats the elapsed time as MM:SS.
func (s Snapshot) Elapsed() string {
	return domain.FormatElapsed(s.ElapsedSeconds)
}

// Snapshot returns a copy of the session state for display.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make([]CardView, len(s.deck))
	for i, card := range s.deck {
		cards[i] = CardView{
			ID:      card.ID,
			PairID:  card.PairID,
			Face:    card.Face,
			Content: card.Content,
			Icon:    card.Icon,
			Flipped: isCardVisible(card, s.revealed, s.matched),
			Matched: s.matched[card.PairID],
		}
	}

	var score *domain.ScoreEntry
	if s.savedEntry != nil {
		entry := *s.savedEntry
		score = &entry
	}

	return Snapshot{
		ID:             s.id,
		Status:         s.statusLocked(),
		Cards:          cards,
		Moves:          s.moves,
		ElapsedSeconds: s.elapsed,
		MatchedPairs:   len(s.matched),
		TotalPairs:     s.deck.PairCount(),
		Locked:         s.locked,
		Score:          score,
	}
}
