// Package domain contains the core entities of the matching game: concept
// records, the cards and deck built from them, score entries and the bounded
// leaderboard. It is independent of storage, transport and timing concerns.
package domain
