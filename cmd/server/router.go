package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/scry-match/internal/api"
	apiMiddleware "github.com/phrazzld/scry-match/internal/api/middleware"
)

const requestTimeout = 30 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(app.metrics.Middleware)

	if len(app.config.Server.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.config.Server.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"X-Trace-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	gameHandler := api.NewGameHandler(app.games, app.logger)
	leaderboardHandler := api.NewLeaderboardHandler(app.leaderboard, app.logger)
	conceptHandler := api.NewConceptHandler(app.concepts, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/games", gameHandler.CreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", gameHandler.GetGame)
			r.Delete("/", gameHandler.DeleteGame)
			r.Post("/select", gameHandler.SelectCard)
			r.Post("/restart", gameHandler.RestartGame)
		})

		r.Get("/leaderboard", leaderboardHandler.GetLeaderboard)
		r.Get("/concepts", conceptHandler.ListConcepts)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", app.metrics.Handler())

	return r
}
