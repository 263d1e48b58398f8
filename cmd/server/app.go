package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/raptrainer/internal/app"
	"github.com/phrazzld/raptrainer/internal/config"
	"github.com/phrazzld/raptrainer/internal/playback"
)

// application holds the long-lived dependencies of the server.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	trainer *app.Trainer
	player  *playback.Player
}

// newApplication builds the trainer and its player. When playback autostart
// is configured the player begins showing words immediately; an empty queue
// only logs a warning.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	opts ...app.Option,
) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	trainer, err := app.NewTrainer(cfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build trainer: %w", err)
	}

	player := playback.NewPlayer(trainer.Service, trainer.Emitter, logger)

	a := &application{
		config:  cfg,
		logger:  logger,
		trainer: trainer,
		player:  player,
	}

	logger.Info("Application initialized successfully",
		"categories", len(trainer.Engine.CategoryIDs()),
		"autostart", cfg.Playback.Autostart)

	if cfg.Playback.Autostart {
		if err := player.Start(ctx); err != nil {
			logger.Warn("Playback autostart skipped", "error", err)
		}
	}
	return a, nil
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (a *application) Run(ctx context.Context) error {
	if err := a.startHTTPServer(ctx, a.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops playback. It is safe to call more than once.
func (a *application) cleanup() {
	if a.player != nil {
		a.player.Stop()
	}
	a.logger.Info("Application shutdown completed")
}
