package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/phrazzld/raptrainer/internal/events"
	"github.com/phrazzld/raptrainer/internal/playback"
	"github.com/phrazzld/raptrainer/internal/service"
	"github.com/spf13/cobra"
)

// Bounds of the --delay flag, the same as playback.display_delay_ms.
const (
	MinDelay = time.Second
	MaxDelay = 30 * time.Second
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	selectionFlags
	Delay  time.Duration
	Repeat bool

	// tick replaces the display delay after flag validation; tests set it.
	tick time.Duration
}

// ShownWord is printed for every word during playback.
type ShownWord struct {
	Word      string `json:"word"      yaml:"word"`
	Remaining int    `json:"remaining" yaml:"remaining"`
}

func (w ShownWord) Text() string {
	return w.Word + "\n"
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	return newPlayCommand(rootOpts, &PlayOptions{})
}

func newPlayCommand(rootOpts *RootOptions, opts *PlayOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Show one word per display delay in the terminal",
		Long: `Show the selected words one at a time on a timer.

Playback ends with Ctrl-C, or when the queue runs out and --repeat is off.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Categories, "category", "c", nil, "category ids to play")
	cmd.Flags().BoolVar(&opts.All, "all", false, "play every category")
	cmd.Flags().DurationVarP(&opts.Delay, "delay", "d", 0, "time per word, 1s to 30s (default from config)")
	cmd.Flags().BoolVarP(&opts.Repeat, "repeat", "r", false, "reshuffle instead of stopping when the queue runs out")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "shuffle seed for a reproducible order")

	return cmd
}

func runPlay(ctx context.Context, rootOpts *RootOptions, opts *PlayOptions, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	if opts.Delay != 0 && (opts.Delay < MinDelay || opts.Delay > MaxDelay) {
		return fail(f, ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("--delay must be between %s and %s", MinDelay, MaxDelay), nil)
	}

	trainer, _, err := loadTrainer(rootOpts, cmd, f, opts.Seed)
	if err != nil {
		return err
	}
	svc := trainer.Service

	if err := opts.apply(ctx, trainer); err != nil {
		return fail(f, ExitCommandError, ErrCodeUnknownCategory, "invalid category selection", err)
	}

	update := service.SettingsUpdate{}
	switch {
	case opts.tick > 0:
		update.DisplayDelay = &opts.tick
	case opts.Delay > 0:
		update.DisplayDelay = &opts.Delay
	}
	if cmd.Flags().Changed("repeat") {
		update.Repeat = &opts.Repeat
	}
	svc.UpdateSettings(ctx, update)

	var (
		mu        sync.Mutex
		writeErr  error
		exhausted = make(chan struct{})
		once      sync.Once
	)
	printer := events.HandlerFunc(func(_ context.Context, event *events.Event) error {
		switch event.Type {
		case events.TypeWordShown:
			var payload events.WordShownPayload
			if err := event.UnmarshalPayload(&payload); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if err := f.Success(ShownWord{Word: payload.Word, Remaining: payload.Remaining}); err != nil && writeErr == nil {
				writeErr = err
			}
		case events.TypeQueueExhausted:
			once.Do(func() { close(exhausted) })
		}
		return nil
	})
	defer trainer.Emitter.Subscribe(printer)()

	player := playback.NewPlayer(svc, trainer.Emitter, trainer.Logger)
	defer player.Stop()

	if err := player.Start(ctx); err != nil {
		if errors.Is(err, playback.ErrExhausted) {
			return fail(f, ExitFailure, ErrCodeNoWords, "no words in the selected categories", nil)
		}
		return fail(f, ExitFailure, ErrCodeGeneric, "failed to start playback", err)
	}

	select {
	case <-ctx.Done():
		f.VerboseLog("playback interrupted")
	case <-exhausted:
		f.VerboseLog("queue exhausted")
	}
	player.Stop()

	mu.Lock()
	defer mu.Unlock()
	if writeErr != nil {
		return WrapExitError(ExitFailure, "failed to write output", writeErr)
	}
	return nil
}
