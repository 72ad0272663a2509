package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/events"
)

// fakeScheduler fires callbacks when the test advances its clock.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.seq++
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, running due callbacks in order.
// Callbacks scheduled while advancing fire too if they fall due.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()

		next.f()
	}
}

func (s *fakeScheduler) nextDueLocked(target time.Duration) *fakeTimer {
	pending := make([]*fakeTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			pending = append(pending, t)
		}
	}
	s.timers = pending
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].at != pending[j].at {
			return pending[i].at < pending[j].at
		}
		return pending[i].seq < pending[j].seq
	})
	if len(pending) == 0 || pending[0].at > target {
		return nil
	}
	return pending[0]
}

// Pending returns the number of armed timers.
func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// fakeLeaderboard records submissions in memory.
type fakeLeaderboard struct {
	mu        sync.Mutex
	board     domain.Leaderboard
	submitted []domain.ScoreEntry
	err       error
	// onSubmit, when set, runs at the start of Submit.
	onSubmit func()
}

func (f *fakeLeaderboard) Load(ctx context.Context) domain.Leaderboard {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(domain.Leaderboard(nil), f.board...)
}

func (f *fakeLeaderboard) Submit(ctx context.Context, entry domain.ScoreEntry) (domain.Leaderboard, error) {
	if f.onSubmit != nil {
		f.onSubmit()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, entry)
	f.board = f.board.Insert(entry, domain.DefaultLeaderboardCapacity)
	return append(domain.Leaderboard(nil), f.board...), f.err
}

func (f *fakeLeaderboard) Submissions() []domain.ScoreEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ScoreEntry(nil), f.submitted...)
}

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.GameEvent
}

func (r *recordingEmitter) EmitEvent(ctx context.Context, event *events.GameEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEmitter) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

func (r *recordingEmitter) Last(eventType string) *events.GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == eventType {
			return r.events[i]
		}
	}
	return nil
}

func testConcepts(n int) []domain.ConceptRecord {
	concepts := make([]domain.ConceptRecord, n)
	for i := range concepts {
		concepts[i] = domain.ConceptRecord{
			ID:    fmt.Sprintf("c%d", i+1),
			Front: fmt.Sprintf("Term %d", i+1),
			Back:  fmt.Sprintf("Definition %d", i+1),
		}
	}
	return concepts
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	session   *Session
	scheduler *fakeScheduler
	board     *fakeLeaderboard
	emitter   *recordingEmitter
	cfg       Config
}

func newHarness(t *testing.T, pairs int) *harness {
	t.Helper()

	cfg := DefaultConfig()
	cfg.PairCount = pairs

	h := &harness{
		scheduler: &fakeScheduler{},
		board:     &fakeLeaderboard{},
		emitter:   &recordingEmitter{},
		cfg:       cfg,
	}

	session, err := NewSession(uuid.New(), cfg, Dependencies{
		Concepts:    testConcepts(pairs),
		Rand:        rand.New(rand.NewSource(7)),
		Leaderboard: h.board,
		Emitter:     h.emitter,
		Scheduler:   h.scheduler,
		Logger:      discardLogger(),
		Now:         func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	h.session = session
	t.Cleanup(session.Close)
	return h
}

// cardID looks up the dealt id of a concept face.
func (h *harness) cardID(t *testing.T, pairID string, face domain.Face) string {
	t.Helper()
	for _, c := range h.session.Snapshot().Cards {
		if c.PairID == pairID && c.Face == face {
			return c.ID
		}
	}
	t.Fatalf("no %s card for pair %s", face, pairID)
	return ""
}

func (h *harness) selectCard(t *testing.T, pairID string, face domain.Face) bool {
	t.Helper()
	accepted, err := h.session.SelectCard(context.Background(), h.cardID(t, pairID, face))
	if err != nil {
		t.Fatalf("SelectCard(%s, %s) error = %v", pairID, face, err)
	}
	return accepted
}

// matchPair selects both faces of pairID and lets the match settle.
func (h *harness) matchPair(t *testing.T, pairID string) {
	t.Helper()
	if !h.selectCard(t, pairID, domain.FaceFront) || !h.selectCard(t, pairID, domain.FaceBack) {
		t.Fatalf("selection of pair %s was rejected", pairID)
	}
	h.scheduler.Advance(h.cfg.MatchDelay)
}
