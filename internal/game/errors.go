package game

import "errors"

var (
	// ErrCardNotFound indicates that a selected card id is not part of the current deal.
	ErrCardNotFound = errors.New("card not found")

	// ErrSessionNotFound indicates that no live session exists for the given id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionClosed indicates that the session has been deleted or reaped.
	ErrSessionClosed = errors.New("session closed")
)
