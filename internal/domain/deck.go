package domain

import (
	"fmt"
	"math/rand"
)

// BuildDeck turns the first pairCount concepts into a shuffled deck of
// 2*pairCount cards, a front and a back card per concept.
//
// It fails with ErrInsufficientContent when fewer concepts are supplied than
// requested and never returns a partial deck. The input slice is not
// modified. Card ids are drawn from rng along with the shuffle, so a fixed
// seed reproduces the same deal and ids.
func BuildDeck(concepts []ConceptRecord, pairCount int, rng *rand.Rand) (Deck, error) {
	if pairCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPairCount, pairCount)
	}
	if len(concepts) < pairCount {
		return nil, fmt.Errorf("%w: need %d concepts, have %d",
			ErrInsufficientContent, pairCount, len(concepts))
	}

	cards := make([]Card, 0, pairCount*2)
	for _, concept := range concepts[:pairCount] {
		if err := concept.Validate(); err != nil {
			return nil, err
		}
		frontID, err := newCardID(rng)
		if err != nil {
			return nil, err
		}
		backID, err := newCardID(rng)
		if err != nil {
			return nil, err
		}
		cards = append(cards,
			Card{
				ID:      frontID,
				PairID:  concept.ID,
				Face:    FaceFront,
				Content: concept.Front,
				Icon:    concept.Icon,
			},
			Card{
				ID:      backID,
				PairID:  concept.ID,
				Face:    FaceBack,
				Content: concept.Back,
				Icon:    concept.Icon,
			},
		)
	}

	deck := Deck(Shuffle(cards, rng))
	if err := deck.Validate(); err != nil {
		// duplicate concept ids in the content table
		return nil, err
	}
	return deck, nil
}

// Shuffle returns a Fisher-Yates permutation of a copy of cards.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
