// Package game implements the matching game session state machine and the
// manager that owns live sessions.
//
// A Session holds one deal of the deck and serializes every selection, timer
// callback and restart behind a single mutex. Delayed pair resolution and the
// elapsed-time clock run on a Scheduler so tests can drive time by hand.
package game
