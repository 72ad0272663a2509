package domain

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Face identifies which side of a concept a card shows.
type Face string

const (
	// FaceFront is the card carrying the term.
	FaceFront Face = "front"
	// FaceBack is the card carrying the definition.
	FaceBack Face = "back"
)

// Card is a single card instance in a deck. Exactly two cards share a PairID,
// one per face. ID is opaque and says nothing about the pair.
type Card struct {
	ID      string `json:"id"`
	PairID  string `json:"pair_id"`
	Face    Face   `json:"face"`
	Content string `json:"content"`
	Icon    string `json:"icon,omitempty"`
}

// newCardID draws a random card id from r. A seeded reader yields the same
// ids on every deal.
func newCardID(r io.Reader) (string, error) {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to generate card id: %w", err)
	}
	return id.String(), nil
}

// Matches reports whether two cards form a pair: same concept, opposite faces.
// A front never matches another front.
func (c Card) Matches(other Card) bool {
	return c.PairID == other.PairID && c.Face != other.Face
}

// Deck is an ordered sequence of cards.
type Deck []Card

// PairCount returns the number of pairs in the deck.
func (d Deck) PairCount() int {
	return len(d) / 2
}

// Find returns the card with the given id.
func (d Deck) Find(cardID string) (Card, bool) {
	for _, c := range d {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// Validate checks that card ids are unique and that every pair id appears
// exactly twice with one front and one back.
func (d Deck) Validate() error {
	if len(d)%2 != 0 {
		return fmt.Errorf("%w: odd card count %d", ErrInvalidDeck, len(d))
	}

	ids := make(map[string]struct{}, len(d))
	faces := make(map[string]map[Face]int, len(d)/2)
	for _, c := range d {
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("%w: duplicate card id %q", ErrInvalidDeck, c.ID)
		}
		ids[c.ID] = struct{}{}

		if faces[c.PairID] == nil {
			faces[c.PairID] = make(map[Face]int, 2)
		}
		faces[c.PairID][c.Face]++
	}

	for pairID, counts := range faces {
		if counts[FaceFront] != 1 || counts[FaceBack] != 1 || len(counts) != 2 {
			return fmt.Errorf("%w: pair %q is not one front and one back", ErrInvalidDeck, pairID)
		}
	}
	return nil
}
