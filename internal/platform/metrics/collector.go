package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Game metrics
	Events          *prometheus.CounterVec
	GamesWon        prometheus.Counter
	Scores          prometheus.Histogram
	MovesPerGame    prometheus.Histogram
	PersistFailures prometheus.Counter
}

var _ events.EventHandler = (*Collector)(nil)

// NewCollector creates a collector with its own registry under namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "game_events_total",
				Help:      "Total number of game events by type",
			},
			[]string{"type"},
		),
		GamesWon: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "games_won_total",
				Help:      "Total number of completed games",
			},
		),
		Scores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "game_score",
				Help:      "Final score of completed games",
				Buckets:   prometheus.LinearBuckets(0, 100, 11),
			},
		),
		MovesPerGame: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "game_moves",
				Help:      "Moves taken to complete a game",
				Buckets:   prometheus.LinearBuckets(4, 4, 10),
			},
		),
		PersistFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "leaderboard_persist_failures_total",
				Help:      "Total number of leaderboard writes that could not be persisted",
			},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Events,
		c.GamesWon,
		c.Scores,
		c.MovesPerGame,
		c.PersistFailures,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RegisterGauge exposes the value returned by fn as a gauge.
func (c *Collector) RegisterGauge(namespace, name, help string, fn func() float64) {
	c.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help},
		fn,
	))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// HandleEvent implements events.EventHandler.
func (c *Collector) HandleEvent(ctx context.Context, event *events.GameEvent) error {
	c.Events.WithLabelValues(event.Type).Inc()

	switch event.Type {
	case events.TypeGameWon:
		var p events.WinPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		c.GamesWon.Inc()
		c.Scores.Observe(float64(p.Score))
		c.MovesPerGame.Observe(float64(p.Moves))
	case events.TypeScoreSaved:
		var p events.ScoreSavedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		if !p.Persisted {
			c.PersistFailures.Inc()
		}
	}
	return nil
}

// Middleware records request counts and latencies by chi route pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
