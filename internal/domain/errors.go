package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientContent is returned when fewer concepts are supplied than
	// the deck needs. It is a configuration error and is never retried.
	ErrInsufficientContent = errors.New("insufficient content for deck")

	// ErrInvalidPairCount is returned when a deck is requested with fewer than one pair.
	ErrInvalidPairCount = errors.New("pair count must be at least 1")

	// ErrInvalidConcept is returned when a concept record is missing required fields.
	ErrInvalidConcept = errors.New("invalid concept record")

	// ErrInvalidDeck is returned when a deck breaks the one-front-one-back pairing.
	ErrInvalidDeck = errors.New("invalid deck")

	// ErrInvalidScoreEntry is returned when a score entry carries negative values.
	ErrInvalidScoreEntry = errors.New("invalid score entry")
)
