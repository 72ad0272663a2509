// Package api exposes game sessions and the leaderboard over HTTP. Handlers
// decode and validate requests, call into the game manager and the
// leaderboard store, and translate domain errors into JSON responses.
package api
