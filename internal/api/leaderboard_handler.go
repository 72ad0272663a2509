package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/platform/logger"
	"github.com/phrazzld/scry-match/internal/store"
)

// LeaderboardHandler serves the saved high scores.
type LeaderboardHandler struct {
	board  store.LeaderboardStore
	logger *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(board store.LeaderboardStore, logger *slog.Logger) *LeaderboardHandler {
	if board == nil {
		panic("leaderboard store cannot be nil for LeaderboardHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for LeaderboardHandler")
	}

	return &LeaderboardHandler{
		board:  board,
		logger: logger.With(slog.String("component", "leaderboard_handler")),
	}
}

// GetLeaderboard handles GET /leaderboard requests.
// The store never fails a read, so this always answers 200.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	board := h.board.Load(r.Context())
	log.Debug("leaderboard loaded", slog.Int("entries", len(board)))
	shared.RespondWithJSON(w, r, http.StatusOK, leaderboardToResponse(board))
}
