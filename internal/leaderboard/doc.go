// Package leaderboard keeps the top scores of completed games and persists
// them as a single JSON blob.
package leaderboard
