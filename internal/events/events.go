package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published by game sessions.
const (
	TypeGameStarted     = "game.started"
	TypeCardsMatched    = "cards.matched"
	TypeCardsMismatched = "cards.mismatched"
	TypeGameWon         = "game.won"
	TypeScoreSaved      = "score.saved"
	TypeGameRestarted   = "game.restarted"
)

// GameEvent records a single state transition of a game session.
type GameEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// SessionID identifies the session that produced the event
	SessionID uuid.UUID `json:"session_id"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// PairPayload is carried by cards.matched and cards.mismatched events.
type PairPayload struct {
	FirstCardID  string `json:"first_card_id"`
	SecondCardID string `json:"second_card_id"`
	Moves        int    `json:"moves"`
}

// WinPayload is carried by game.won events.
type WinPayload struct {
	Moves          int `json:"moves"`
	ElapsedSeconds int `json:"elapsed_seconds"`
	Score          int `json:"score"`
}

// ScoreSavedPayload is carried by score.saved events. Persisted is false when
// the leaderboard could not be written and only the in-memory board was updated.
type ScoreSavedPayload struct {
	Score     int  `json:"score"`
	Rank      int  `json:"rank"`
	Persisted bool `json:"persisted"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *GameEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewGameEvent creates a new GameEvent with the specified type and payload.
// A nil payload is encoded as JSON null.
func NewGameEvent(eventType string, sessionID uuid.UUID, payload interface{}) (*GameEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &GameEvent{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *GameEvent) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *GameEvent) error
}

// EventHandlerFunc adapts an ordinary function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *GameEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *GameEvent) error {
	return f(ctx, event)
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *GameEvent) error { return nil }
