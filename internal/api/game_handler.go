package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/platform/logger"
)

// SessionManager is the subset of game.Manager the handlers need.
type SessionManager interface {
	Create(ctx context.Context) (*game.Session, error)
	Get(id uuid.UUID) (*game.Session, error)
	Delete(id uuid.UUID) error
}

var _ SessionManager = (*game.Manager)(nil)

// GameHandler handles game session HTTP requests
type GameHandler struct {
	sessions SessionManager
	logger   *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(sessions SessionManager, logger *slog.Logger) *GameHandler {
	if sessions == nil {
		panic("session manager cannot be nil for GameHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for GameHandler")
	}

	return &GameHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "game_handler")),
	}
}

// CreateGame handles POST /games requests.
// It deals a new session and returns its initial state.
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	session, err := h.sessions.Create(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("game created", slog.String("game_id", session.ID().String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, snapshotToResponse(session.Snapshot()))
}

// GetGame handles GET /games/{id} requests
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshotToResponse(session.Snapshot()))
}

// SelectCard handles POST /games/{id}/select requests.
// Selections the game ignores still answer 200 with accepted=false.
func (h *GameHandler) SelectCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	session, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	var req SelectCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid select card request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	accepted, err := session.SelectCard(r.Context(), req.CardID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("card selected",
		slog.String("game_id", session.ID().String()),
		slog.String("card_id", req.CardID),
		slog.Bool("accepted", accepted))
	shared.RespondWithJSON(w, r, http.StatusOK, SelectCardResponse{
		Accepted: accepted,
		Game:     snapshotToResponse(session.Snapshot()),
	})
}

// RestartGame handles POST /games/{id}/restart requests
func (h *GameHandler) RestartGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	if err := session.Restart(r.Context()); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshotToResponse(session.Snapshot()))
}

// DeleteGame handles DELETE /games/{id} requests
func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, gameIDParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid game ID")
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("game deleted", slog.String("game_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// lookupSession resolves the {id} path parameter to a live session, writing
// the error response itself when it cannot.
func (h *GameHandler) lookupSession(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id, err := getPathUUID(r, gameIDParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid game ID")
		return nil, false
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return nil, false
	}
	return session, true
}
