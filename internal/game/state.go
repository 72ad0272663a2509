package game

import "github.com/phrazzld/scry-match/internal/domain"

// Status is the lifecycle state of a session, derived from its counters.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusActive Status = "active"
	StatusWon    Status = "won"
)

func isWon(matched map[string]bool, totalPairs int) bool {
	return totalPairs > 0 && len(matched) == totalPairs
}

func isCardVisible(card domain.Card, revealed []string, matched map[string]bool) bool {
	return matched[card.PairID] || containsID(revealed, card.ID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func deriveStatus(started bool, matched map[string]bool, totalPairs int) Status {
	switch {
	case !started:
		return StatusIdle
	case isWon(matched, totalPairs):
		return StatusWon
	default:
		return StatusActive
	}
}
