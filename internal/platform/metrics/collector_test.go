package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func emit(t *testing.T, c *Collector, eventType string, payload interface{}) {
	t.Helper()
	event, err := events.NewGameEvent(eventType, uuid.New(), payload)
	require.NoError(t, err)
	require.NoError(t, c.HandleEvent(context.Background(), event))
}

func TestCollector_HandleEvent(t *testing.T) {
	t.Parallel()
	c := NewCollector("scry")

	emit(t, c, events.TypeGameStarted, nil)
	emit(t, c, events.TypeCardsMatched, events.PairPayload{Moves: 1})
	emit(t, c, events.TypeGameWon, events.WinPayload{Moves: 8, ElapsedSeconds: 40, Score: 880})
	emit(t, c, events.TypeScoreSaved, events.ScoreSavedPayload{Score: 880, Rank: 1, Persisted: false})
	emit(t, c, events.TypeScoreSaved, events.ScoreSavedPayload{Score: 700, Rank: 2, Persisted: true})

	body := scrape(t, c)
	assert.Contains(t, body, `scry_game_events_total{type="game.started"} 1`)
	assert.Contains(t, body, `scry_game_events_total{type="score.saved"} 2`)
	assert.Contains(t, body, "scry_games_won_total 1")
	assert.Contains(t, body, "scry_game_score_sum 880")
	assert.Contains(t, body, "scry_game_moves_count 1")
	assert.Contains(t, body, "scry_leaderboard_persist_failures_total 1")
}

func TestCollector_HandleEventBadPayload(t *testing.T) {
	t.Parallel()
	c := NewCollector("scry")

	event := &events.GameEvent{Type: events.TypeGameWon, Payload: []byte(`"nope"`)}
	assert.Error(t, c.HandleEvent(context.Background(), event))
}

func TestCollector_Middleware(t *testing.T) {
	t.Parallel()
	c := NewCollector("scry")

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games/abc", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := scrape(t, c)
	assert.Contains(t, body, `scry_http_requests_total{method="GET",route="/api/games/{id}",status="404"} 1`)
}

func TestCollector_RegisterGauge(t *testing.T) {
	t.Parallel()
	c := NewCollector("scry")

	c.RegisterGauge("scry", "live_sessions", "Number of live game sessions", func() float64 { return 3 })

	assert.Contains(t, scrape(t, c), "scry_live_sessions 3")
}

func TestCollectorsAreIndependent(t *testing.T) {
	t.Parallel()

	a := NewCollector("scry")
	b := NewCollector("scry")
	a.GamesWon.Inc()

	assert.Contains(t, scrape(t, a), "scry_games_won_total 1")
	assert.Contains(t, scrape(t, b), "scry_games_won_total 0")
}
