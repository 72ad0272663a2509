// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config file and SCRY_ environment variables.
// It provides type-safe access to the game, scoring, leaderboard and
// storage settings while keeping configuration details separate from the
// game logic.
package config
