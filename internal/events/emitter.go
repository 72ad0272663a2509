package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Dispatcher delivers game events to subscribed handlers on the emitting
// goroutine, in subscription order. Sessions call it after releasing their
// lock, so a slow handler delays only the request that produced the event.
type Dispatcher struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

// subscription pairs a handler with the event types it wants. An empty type
// set matches every event.
type subscription struct {
	handler EventHandler
	types   map[string]struct{}
}

func (s subscription) wants(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// NewDispatcher creates a Dispatcher with no subscribers.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger: logger.With(slog.String("component", "game_event_dispatcher")),
	}
}

// Subscribe registers handler for the given event types, or for all game
// events when none are named.
func (d *Dispatcher) Subscribe(handler EventHandler, types ...string) {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	sub := subscription{handler: handler}
	if len(types) > 0 {
		sub.types = make(map[string]struct{}, len(types))
		for _, t := range types {
			sub.types[t] = struct{}{}
		}
	}

	d.mu.Lock()
	d.subs = append(d.subs, sub)
	count := len(d.subs)
	d.mu.Unlock()

	d.logger.Debug("game event handler subscribed",
		slog.Int("subscriber_count", count),
		slog.Any("event_types", types))
}

// EmitEvent hands event to every subscriber that wants its type. A failing or
// panicking handler does not stop delivery to the rest; all failures come back
// joined.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *GameEvent) error {
	if event == nil {
		return nil
	}

	d.mu.RLock()
	subs := make([]subscription, len(d.subs))
	copy(subs, d.subs)
	d.mu.RUnlock()

	log := d.logger.With(
		slog.String("event_type", event.Type),
		slog.String("session_id", event.SessionID.String()))
	log.DebugContext(ctx, "dispatching game event", slog.String("event_id", event.ID.String()))

	var errs []error
	for i, sub := range subs {
		if !sub.wants(event.Type) {
			continue
		}
		if err := deliver(ctx, sub.handler, event); err != nil {
			log.ErrorContext(ctx, "game event handler failed",
				slog.Any("error", err),
				slog.Int("subscriber", i))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, handler EventHandler, event *GameEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	return handler.HandleEvent(ctx, event)
}

var _ EventEmitter = (*Dispatcher)(nil)
