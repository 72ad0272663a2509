// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the game
// core: the leaderboard is kept as a single JSON blob in any key-value
// store that implements BlobStore.
package store
