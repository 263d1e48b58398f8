// Package app assembles the trainer from configuration: word loader, queue
// engine, event emitter and service. The server and the CLI share it.
package app

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/phrazzld/raptrainer/internal/config"
	"github.com/phrazzld/raptrainer/internal/events"
	"github.com/phrazzld/raptrainer/internal/service"
	"github.com/phrazzld/raptrainer/internal/wordqueue"
	"github.com/phrazzld/raptrainer/internal/wordsource"
	"github.com/spf13/afero"
)

// Trainer is the assembled word trainer.
type Trainer struct {
	Engine  *wordqueue.Engine
	Emitter *events.InMemoryEventEmitter
	Service service.TrainerService
	Logger  *slog.Logger
}

type options struct {
	fs   afero.Fs
	rand *rand.Rand
}

// Option customizes NewTrainer.
type Option func(*options)

// WithFs reads word files from fs instead of the host filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithRand shuffles with r, for reproducible queues.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// NewTrainer loads the configured word files and returns a ready trainer.
// Missing or unreadable files are logged and leave the queue empty.
func NewTrainer(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Trainer, error) {
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}

	loader := wordsource.NewLoader(o.fs, logger,
		wordsource.WithExtension(cfg.Words.Extension),
		wordsource.WithNormalization(cfg.Words.Normalize))
	source := wordsource.NewSource(loader, cfg.Words.Root, cfg.Words.ThemesFile)

	engine := wordqueue.NewEngine(source, logger,
		wordqueue.WithRand(o.rand),
		wordqueue.WithDisplayDelay(time.Duration(cfg.Playback.DisplayDelayMS)*time.Millisecond),
		wordqueue.WithRepeat(cfg.Playback.Repeat))
	engine.Initialize()

	emitter := events.NewInMemoryEventEmitter(logger)

	svc, err := service.NewTrainerService(engine, emitter, logger)
	if err != nil {
		return nil, err
	}

	return &Trainer{
		Engine:  engine,
		Emitter: emitter,
		Service: svc,
		Logger:  logger,
	}, nil
}
