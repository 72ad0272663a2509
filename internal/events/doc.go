// Package events provides types and interfaces for publishing game lifecycle events.
//
// Sessions emit events without knowing which handlers will process them, which
// keeps the game engine free of metrics and logging concerns.
//
// The primary components are:
// - GameEvent: a single state transition of a game session
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
// - Dispatcher: synchronous fan-out to handlers, optionally filtered by event type
package events
