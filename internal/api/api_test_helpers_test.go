package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scry-match/internal/api/middleware"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/leaderboard"
	"github.com/phrazzld/scry-match/internal/platform/logger"
	"github.com/phrazzld/scry-match/internal/platform/memory"
	"github.com/stretchr/testify/require"
)

const (
	testTick          = time.Hour
	testMatchDelay    = time.Millisecond
	testMismatchDelay = 2 * time.Millisecond
)

type manualTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// manualScheduler holds callbacks until the test fires them.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) game.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// FireResolutions runs every pending pair resolution, leaving clock ticks queued.
func (s *manualScheduler) FireResolutions() {
	s.mu.Lock()
	var due []*manualTimer
	var keep []*manualTimer
	for _, t := range s.timers {
		switch {
		case t.stopped:
		case t.d < testTick:
			t.stopped = true
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	s.timers = keep
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

type testAPI struct {
	server    *httptest.Server
	manager   *game.Manager
	board     *leaderboard.Service
	scheduler *manualScheduler
	logs      *logger.TestLogBuffer
}

func testConcepts(n int) []domain.ConceptRecord {
	concepts := make([]domain.ConceptRecord, n)
	for i := range concepts {
		concepts[i] = domain.ConceptRecord{
			ID:    fmt.Sprintf("c%d", i+1),
			Front: fmt.Sprintf("Term %d", i+1),
			Back:  fmt.Sprintf("Definition %d", i+1),
			Icon:  "*",
		}
	}
	return concepts
}

func newTestAPI(t *testing.T, pairs int) *testAPI {
	t.Helper()

	logs, log := logger.NewTestLogger()
	board := leaderboard.NewService(memory.NewBlobStore(), leaderboard.DefaultKey, 5, log)
	scheduler := &manualScheduler{}

	manager, err := game.NewManager(game.ManagerConfig{
		Session: game.Config{
			PairCount:     pairs,
			TickInterval:  testTick,
			MatchDelay:    testMatchDelay,
			MismatchDelay: testMismatchDelay,
		},
		Seed:       42,
		SessionTTL: time.Hour,
	}, testConcepts(pairs), nil, board, nil, log)
	require.NoError(t, err)
	manager.WithScheduler(scheduler)
	t.Cleanup(manager.Close)

	games := NewGameHandler(manager, log)
	scores := NewLeaderboardHandler(board, log)

	r := chi.NewRouter()
	r.Use(middleware.Trace(log))
	r.Route("/api", func(r chi.Router) {
		r.Post("/games", games.CreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", games.GetGame)
			r.Delete("/", games.DeleteGame)
			r.Post("/select", games.SelectCard)
			r.Post("/restart", games.RestartGame)
		})
		r.Get("/leaderboard", scores.GetLeaderboard)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testAPI{
		server:    server,
		manager:   manager,
		board:     board,
		scheduler: scheduler,
		logs:      logs,
	}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (a *testAPI) createGame(t *testing.T) GameResponse {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/games", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[GameResponse](t, resp)
}

func (a *testAPI) selectCard(t *testing.T, game GameResponse, cardID string) SelectCardResponse {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/games/"+game.ID.String()+"/select",
		fmt.Sprintf(`{"card_id": %q}`, cardID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[SelectCardResponse](t, resp)
}

// cardID reads the dealt id of a concept face from the server side, since the
// API does not expose pairings.
func (a *testAPI) cardID(t *testing.T, g GameResponse, pairID string, face domain.Face) string {
	t.Helper()
	session, err := a.manager.Get(g.ID)
	require.NoError(t, err)
	for _, c := range session.Snapshot().Cards {
		if c.PairID == pairID && c.Face == face {
			return c.ID
		}
	}
	t.Fatalf("no %s card for pair %s", face, pairID)
	return ""
}

// matchAll plays a perfect game.
func (a *testAPI) matchAll(t *testing.T, g GameResponse) {
	t.Helper()
	for i := 1; i <= g.TotalPairs; i++ {
		pairID := fmt.Sprintf("c%d", i)
		a.selectCard(t, g, a.cardID(t, g, pairID, domain.FaceFront))
		a.selectCard(t, g, a.cardID(t, g, pairID, domain.FaceBack))
		a.scheduler.FireResolutions()
	}
}
