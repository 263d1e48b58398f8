package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/raptrainer/internal/api/shared"
	"github.com/phrazzld/raptrainer/internal/playback"
	"github.com/phrazzld/raptrainer/internal/platform/logger"
)

// PlaybackController is the part of *playback.Player the API drives.
type PlaybackController interface {
	Start(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Restart(ctx context.Context) error
	State() playback.State
}

// PlaybackHandler serves the playback control endpoints.
type PlaybackHandler struct {
	player PlaybackController
	logger *slog.Logger
}

// NewPlaybackHandler creates a new PlaybackHandler
func NewPlaybackHandler(player PlaybackController, logger *slog.Logger) *PlaybackHandler {
	if player == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("player cannot be nil for PlaybackHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PlaybackHandler")
	}

	return &PlaybackHandler{
		player: player,
		logger: logger.With(slog.String("component", "playback_handler")),
	}
}

// State handles GET /playback
func (h *PlaybackHandler) State(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, PlaybackResponse{State: h.player.State()})
}

// Start handles POST /playback/start
func (h *PlaybackHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, "start", h.player.Start)
}

// Pause handles POST /playback/pause
func (h *PlaybackHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, "pause", h.player.Pause)
}

// Resume handles POST /playback/resume. It answers 409 when the queue is
// exhausted and must be reset first.
func (h *PlaybackHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, "resume", h.player.Resume)
}

// Restart handles POST /playback/restart
func (h *PlaybackHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, "restart", h.player.Restart)
}

func (h *PlaybackHandler) control(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(context.Context) error,
) {
	if err := fn(r.Context()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	state := h.player.State()
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("playback control",
		slog.String("action", action),
		slog.String("state", state.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, PlaybackResponse{State: state})
}
