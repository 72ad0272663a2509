package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/domain/scoring"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/phrazzld/scry-match/internal/random"
	"github.com/phrazzld/scry-match/internal/store"
)

// ManagerConfig configures session creation and expiry.
type ManagerConfig struct {
	Session Config
	// Seed fixes the shuffle of every new session. Zero seeds each session
	// from crypto/rand.
	Seed int64
	// SessionTTL is how long a session may sit untouched before the reaper closes it.
	SessionTTL time.Duration
}

// Manager owns the live sessions of the process.
type Manager struct {
	cfg       ManagerConfig
	concepts  []domain.ConceptRecord
	scorer    scoring.Scorer
	board     store.LeaderboardStore
	emitter   events.EventEmitter
	scheduler Scheduler
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	reaping   bool
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewManager creates a Manager. It fails when the concepts cannot fill a deck
// of the configured size, so a misconfigured server refuses to start.
func NewManager(
	cfg ManagerConfig,
	concepts []domain.ConceptRecord,
	scorer scoring.Scorer,
	board store.LeaderboardStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*Manager, error) {
	if board == nil {
		panic("leaderboard store cannot be nil")
	}
	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}
	if len(concepts) < cfg.Session.PairCount {
		return nil, fmt.Errorf("%w: need %d concepts, have %d",
			domain.ErrInsufficientContent, cfg.Session.PairCount, len(concepts))
	}
	if logger == nil {
		logger = slog.Default()
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}

	return &Manager{
		cfg:       cfg,
		concepts:  concepts,
		scorer:    scorer,
		board:     board,
		emitter:   emitter,
		scheduler: NewRealScheduler(),
		logger:    logger.With(slog.String("component", "game_manager")),
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*Session),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// WithScheduler replaces the scheduler used by sessions created afterwards.
func (m *Manager) WithScheduler(s Scheduler) *Manager {
	m.scheduler = s
	return m
}

// WithClock replaces the wall clock used for activity tracking and score timestamps.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Create deals a new session and registers it.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	rng, err := random.NewRand(m.cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to seed session: %w", err)
	}

	id := uuid.New()
	session, err := NewSession(id, m.cfg.Session, Dependencies{
		Concepts:    m.concepts,
		Rand:        rng,
		Scorer:      m.scorer,
		Leaderboard: m.board,
		Emitter:     m.emitter,
		Scheduler:   m.scheduler,
		Logger:      m.logger,
		Now:         m.now,
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[id] = session
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "session created",
		slog.String("session_id", id.String()),
		slog.Int("live_sessions", count))
	return session, nil
}

// Get returns the live session with the given id and records the lookup as activity.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	session.touch()
	return session, nil
}

// Delete closes and forgets the session with the given id.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Close()
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap closes every session whose last activity is older than the TTL and
// returns how many were removed.
func (m *Manager) Reap() int {
	if m.cfg.SessionTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.SessionTTL)

	m.mu.Lock()
	var expired []*Session
	for id, session := range m.sessions {
		if session.LastActivity().Before(cutoff) {
			expired = append(expired, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		session.Close()
	}
	if len(expired) > 0 {
		m.logger.Info("reaped idle sessions", slog.Int("count", len(expired)))
	}
	return len(expired)
}

// StartReaper runs Reap every interval until Close is called.
func (m *Manager) StartReaper(interval time.Duration) {
	m.mu.Lock()
	if m.reaping {
		m.mu.Unlock()
		return
	}
	m.reaping = true
	m.mu.Unlock()

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Reap()
			case <-m.stop:
				return
			}
		}
	}()
}

// Close stops the reaper, if running, and closes every session.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stop)

		m.mu.Lock()
		reaping := m.reaping
		m.mu.Unlock()
		if reaping {
			<-m.done
		}

		m.mu.Lock()
		sessions := m.sessions
		m.sessions = make(map[uuid.UUID]*Session)
		m.mu.Unlock()

		for _, session := range sessions {
			session.Close()
		}
	})
}
