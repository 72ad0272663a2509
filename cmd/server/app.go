package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-match/internal/config"
	"github.com/phrazzld/scry-match/internal/content"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/domain/scoring"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/leaderboard"
	"github.com/phrazzld/scry-match/internal/platform/logger"
	"github.com/phrazzld/scry-match/internal/platform/metrics"
	"github.com/spf13/afero"
)

const metricsNamespace = "scry_match"

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	concepts    []domain.ConceptRecord
	storage     *storage
	leaderboard *leaderboard.Service
	emitter     *events.Dispatcher
	metrics     *metrics.Collector
	games       *game.Manager
}

// run loads configuration, builds the application and serves until ctx is done.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Int("pair_count", cfg.Game.PairCount))

	app, err := newApplication(ctx, cfg, log, afero.NewOsFs())
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

// newApplication wires every component from cfg. Content is read from fsys.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, fsys afero.Fs) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
	}

	concepts, err := content.Load(fsys, cfg.Game.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game content: %w", err)
	}
	log.Info("game content loaded", slog.Int("concepts", len(concepts)))
	app.concepts = concepts

	params, err := scoring.NewParams(scoring.ParamsConfig{
		BaseScore:       cfg.Scoring.BaseScore,
		MovePenalty:     cfg.Scoring.MovePenalty,
		TimeStepSeconds: cfg.Scoring.TimeStepSeconds,
		TimeStepPenalty: cfg.Scoring.TimeStepPenalty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring params: %w", err)
	}
	scorer, err := scoring.NewScorerWithParams(params)
	if err != nil {
		return nil, fmt.Errorf("failed to build scorer: %w", err)
	}

	app.storage, err = openStorage(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	app.leaderboard = leaderboard.NewService(app.storage.blobs, cfg.Leaderboard.Key, cfg.Leaderboard.Capacity, log)

	app.metrics = metrics.NewCollector(metricsNamespace)
	app.emitter = events.NewDispatcher(log)
	app.emitter.Subscribe(app.metrics)

	app.games, err = game.NewManager(game.ManagerConfig{
		Session: game.Config{
			PairCount:     cfg.Game.PairCount,
			TickInterval:  cfg.Game.TickInterval,
			MatchDelay:    cfg.Game.MatchDelay,
			MismatchDelay: cfg.Game.MismatchDelay,
		},
		Seed:       cfg.Game.Seed,
		SessionTTL: cfg.Game.SessionTTL,
	}, concepts, scorer, app.leaderboard, app.emitter, log)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create game manager: %w", err)
	}

	app.metrics.RegisterGauge(metricsNamespace, "live_sessions", "Number of game sessions currently held in memory",
		func() float64 { return float64(app.games.Len()) })

	log.Info("application initialized successfully")
	return app, nil
}

// Run starts the session reaper and the HTTP server, returning once the
// server has shut down.
func (app *application) Run(ctx context.Context) error {
	app.games.StartReaper(reaperInterval(app.config.Game.SessionTTL))

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// reaperInterval checks for idle sessions a few times per TTL, but at most
// once per second.
func reaperInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.games != nil {
		app.games.Close()
	}
	if app.storage != nil {
		if err := app.storage.Close(); err != nil {
			app.logger.Error("failed to close storage", slog.Any("error", err))
		}
	}
}
