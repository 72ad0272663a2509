package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/domain/scoring"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/phrazzld/scry-match/internal/store"
)

// Config holds the per-session timing and deck size settings.
type Config struct {
	PairCount     int
	TickInterval  time.Duration
	MatchDelay    time.Duration
	MismatchDelay time.Duration
}

// DefaultConfig returns the standard game settings: 8 pairs, a 1s clock,
// 500ms to settle a match and 1s to hide a mismatch.
func DefaultConfig() Config {
	return Config{
		PairCount:     8,
		TickInterval:  time.Second,
		MatchDelay:    500 * time.Millisecond,
		MismatchDelay: time.Second,
	}
}

// Validate checks that the settings describe a playable game.
func (c Config) Validate() error {
	if c.PairCount < 1 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidPairCount, c.PairCount)
	}
	if c.TickInterval <= 0 || c.MatchDelay <= 0 || c.MismatchDelay <= 0 {
		return fmt.Errorf("%w: timer durations must be positive", domain.ErrValidation)
	}
	if c.MismatchDelay <= c.MatchDelay {
		return fmt.Errorf("%w: mismatch delay %s must exceed match delay %s",
			domain.ErrValidation, c.MismatchDelay, c.MatchDelay)
	}
	return nil
}

// Dependencies are the collaborators a Session needs. Concepts, Rand and
// Leaderboard are required; the rest fall back to defaults when nil.
type Dependencies struct {
	Concepts    []domain.ConceptRecord
	Rand        *rand.Rand
	Scorer      scoring.Scorer
	Leaderboard store.LeaderboardStore
	Emitter     events.EventEmitter
	Scheduler   Scheduler
	Logger      *slog.Logger
	Now         func() time.Time
}

// Session is one player's game. All state lives behind mu; every public
// method and every timer callback takes it, so selections, resolutions and
// clock ticks are applied one at a time.
type Session struct {
	id  uuid.UUID
	cfg Config

	concepts  []domain.ConceptRecord
	rng       *rand.Rand
	scorer    scoring.Scorer
	board     store.LeaderboardStore
	emitter   events.EventEmitter
	scheduler Scheduler
	logger    *slog.Logger
	now       func() time.Time

	mu           sync.Mutex
	generation   uint64
	deck         domain.Deck
	revealed     []string
	matched      map[string]bool
	moves        int
	elapsed      int
	started      bool
	locked       bool
	scoreSaved   bool
	closed       bool
	savedEntry   *domain.ScoreEntry
	resolveTimer Timer
	tickTimer    Timer
	lastActivity time.Time
}

// NewSession deals a fresh deck and returns an idle session.
// Returns an error wrapping domain.ErrInsufficientContent when the concepts
// cannot fill cfg.PairCount pairs.
func NewSession(id uuid.UUID, cfg Config, deps Dependencies) (*Session, error) {
	if deps.Leaderboard == nil {
		panic("leaderboard store cannot be nil")
	}
	if deps.Rand == nil {
		panic("random source cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if deps.Scorer == nil {
		deps.Scorer = scoring.NewDefaultScorer()
	}
	if deps.Emitter == nil {
		deps.Emitter = events.NopEmitter{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = NewRealScheduler()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	deck, err := domain.BuildDeck(deps.Concepts, cfg.PairCount, deps.Rand)
	if err != nil {
		return nil, fmt.Errorf("failed to deal deck: %w", err)
	}

	return &Session{
		id:           id,
		cfg:          cfg,
		concepts:     deps.Concepts,
		rng:          deps.Rand,
		scorer:       deps.Scorer,
		board:        deps.Leaderboard,
		emitter:      deps.Emitter,
		scheduler:    deps.Scheduler,
		logger:       deps.Logger.With(slog.String("component", "game_session"), slog.String("session_id", id.String())),
		now:          deps.Now,
		deck:         deck,
		matched:      make(map[string]bool),
		lastActivity: deps.Now(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// LastActivity returns the time of the most recent selection, restart or lookup.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = s.now()
	s.mu.Unlock()
}

// Status returns the derived lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Session) statusLocked() Status {
	return deriveStatus(s.started, s.matched, s.deck.PairCount())
}

// SelectCard reveals cardID. It returns false without changing anything when
// the board is locked, two cards are already face up, the card is already
// face up or its pair is already matched. An id outside the current deal
// returns ErrCardNotFound.
//
// The first accepted selection starts the clock. The second card of a pair
// counts one move and locks the board until the pair resolves after
// MatchDelay or MismatchDelay.
func (s *Session) SelectCard(ctx context.Context, cardID string) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrSessionClosed
	}

	card, ok := s.deck.Find(cardID)
	if !ok {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %q", ErrCardNotFound, cardID)
	}

	s.lastActivity = s.now()
	if !s.canSelectLocked(card) {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "selection ignored", slog.String("card_id", cardID))
		return false, nil
	}

	var pending []*events.GameEvent
	if !s.started {
		s.started = true
		s.armTickLocked()
		pending = s.appendEvent(pending, events.TypeGameStarted, nil)
	}

	s.revealed = append(s.revealed, card.ID)
	if len(s.revealed) == 2 {
		s.moves++
		s.locked = true

		first, _ := s.deck.Find(s.revealed[0])
		match := first.Matches(card)
		delay := s.cfg.MismatchDelay
		if match {
			delay = s.cfg.MatchDelay
		}
		gen := s.generation
		s.resolveTimer = s.scheduler.AfterFunc(delay, func() {
			s.resolve(gen, match)
		})
	}
	s.mu.Unlock()

	s.emit(ctx, pending)
	return true, nil
}

func (s *Session) canSelectLocked(card domain.Card) bool {
	return !s.locked &&
		len(s.revealed) < 2 &&
		!containsID(s.revealed, card.ID) &&
		!s.matched[card.PairID]
}

// resolve settles the revealed pair armed under generation gen.
func (s *Session) resolve(gen uint64, match bool) {
	s.mu.Lock()
	if gen != s.generation || s.closed || len(s.revealed) != 2 {
		s.mu.Unlock()
		return
	}
	s.resolveTimer = nil

	first, _ := s.deck.Find(s.revealed[0])
	payload := events.PairPayload{
		FirstCardID:  s.revealed[0],
		SecondCardID: s.revealed[1],
		Moves:        s.moves,
	}

	var pending []*events.GameEvent
	if match {
		s.matched[first.PairID] = true
		pending = s.appendEvent(pending, events.TypeCardsMatched, payload)
	} else {
		pending = s.appendEvent(pending, events.TypeCardsMismatched, payload)
	}
	s.revealed = nil
	s.locked = false

	if isWon(s.matched, s.deck.PairCount()) {
		stopTimer(s.tickTimer)
		s.tickTimer = nil
	}
	s.mu.Unlock()

	ctx := context.Background()
	s.emit(ctx, pending)
	s.EvaluateWin(ctx)
}

// EvaluateWin saves the score of a won game to the leaderboard. Only the first
// call after a win saves anything; it returns true when this call did. A
// leaderboard that cannot be persisted is logged and does not undo the save.
func (s *Session) EvaluateWin(ctx context.Context) bool {
	s.mu.Lock()
	if s.closed || s.scoreSaved || s.statusLocked() != StatusWon {
		s.mu.Unlock()
		return false
	}

	score := s.scorer.Score(s.moves, s.elapsed)
	entry, err := domain.NewScoreEntry(s.moves, s.elapsed, score, s.now())
	if err != nil {
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "failed to build score entry", slog.Any("error", err))
		return false
	}

	s.scoreSaved = true
	s.savedEntry = &entry
	s.mu.Unlock()

	// Submit runs unlocked; the leaderboard may block on storage.
	board, err := s.board.Submit(ctx, entry)
	persisted := err == nil
	if err != nil {
		if errors.Is(err, store.ErrPersistFailed) {
			s.logger.WarnContext(ctx, "leaderboard not persisted, keeping in-memory scores",
				slog.Any("error", err),
				slog.Int("score", entry.Score))
		} else {
			s.logger.ErrorContext(ctx, "failed to submit score",
				slog.Any("error", err),
				slog.Int("score", entry.Score))
		}
	}

	var pending []*events.GameEvent
	pending = s.appendEvent(pending, events.TypeGameWon, events.WinPayload{
		Moves:          entry.Moves,
		ElapsedSeconds: entry.ElapsedSeconds,
		Score:          entry.Score,
	})
	pending = s.appendEvent(pending, events.TypeScoreSaved, events.ScoreSavedPayload{
		Score:     entry.Score,
		Rank:      rankOf(board, entry),
		Persisted: persisted,
	})

	s.logger.InfoContext(ctx, "game won",
		slog.Int("moves", entry.Moves),
		slog.Int("elapsed_seconds", entry.ElapsedSeconds),
		slog.Int("score", entry.Score))
	s.emit(ctx, pending)
	return true
}

// rankOf returns the 1-based position of entry on board, or 0 if it did not
// make the cut.
func rankOf(board domain.Leaderboard, entry domain.ScoreEntry) int {
	for i, e := range board {
		if e.Score == entry.Score &&
			e.Moves == entry.Moves &&
			e.ElapsedSeconds == entry.ElapsedSeconds &&
			e.Timestamp.Equal(entry.Timestamp) {
			return i + 1
		}
	}
	return 0
}

// Tick advances the elapsed-time counter by one second while the game is active.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickLocked()
}

func (s *Session) tickLocked() bool {
	if s.closed || s.statusLocked() != StatusActive {
		return false
	}
	s.elapsed++
	return true
}

func (s *Session) armTickLocked() {
	gen := s.generation
	s.tickTimer = s.scheduler.AfterFunc(s.cfg.TickInterval, func() {
		s.onTick(gen)
	})
}

// onTick is the clock callback armed under generation gen. It re-arms itself
// only while the game stays active.
func (s *Session) onTick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}
	if !s.tickLocked() {
		s.tickTimer = nil
		return
	}
	s.armTickLocked()
}

// Restart deals a new shuffled deck of the same size and returns the session
// to idle with every counter cleared. Pending resolutions and clock ticks from
// the previous deal are cancelled.
func (s *Session) Restart(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}

	deck, err := domain.BuildDeck(s.concepts, s.cfg.PairCount, s.rng)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to deal deck: %w", err)
	}

	s.invalidateLocked()
	s.deck = deck
	s.revealed = nil
	s.matched = make(map[string]bool)
	s.moves = 0
	s.elapsed = 0
	s.started = false
	s.locked = false
	s.scoreSaved = false
	s.savedEntry = nil
	s.lastActivity = s.now()

	pending := s.appendEvent(nil, events.TypeGameRestarted, nil)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "session restarted")
	s.emit(ctx, pending)
	return nil
}

// Close stops all timers. Every later call is a no-op or returns ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.invalidateLocked()
}

// invalidateLocked bumps the generation so in-flight callbacks become no-ops
// and stops both timers.
func (s *Session) invalidateLocked() {
	s.generation++
	stopTimer(s.resolveTimer)
	stopTimer(s.tickTimer)
	s.resolveTimer = nil
	s.tickTimer = nil
}

func (s *Session) appendEvent(pending []*events.GameEvent, eventType string, payload interface{}) []*events.GameEvent {
	event, err := events.NewGameEvent(eventType, s.id, payload)
	if err != nil {
		s.logger.Error("failed to create event",
			slog.String("event_type", eventType),
			slog.Any("error", err))
		return pending
	}
	return append(pending, event)
}

func (s *Session) emit(ctx context.Context, pending []*events.GameEvent) {
	for _, event := range pending {
		// The emitter logs handler failures itself.
		_ = s.emitter.EmitEvent(ctx, event)
	}
}
