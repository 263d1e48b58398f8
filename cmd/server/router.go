package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/raptrainer/internal/api"
	apiMiddleware "github.com/phrazzld/raptrainer/internal/api/middleware"
	"github.com/phrazzld/raptrainer/internal/stream"
)

// setupRouter wires the JSON API, the event stream and the health check.
func (a *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(a.logger))

	trainerHandler := api.NewTrainerHandler(a.trainer.Service, a.logger)
	playbackHandler := api.NewPlaybackHandler(a.player, a.logger)
	streamHandler := stream.NewHandler(a.trainer.Emitter, a.logger)

	r.Route("/api", func(r chi.Router) {
		trainerHandler.Mount(r)
		playbackHandler.Mount(r)
		r.Method(http.MethodGet, "/stream", streamHandler)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
