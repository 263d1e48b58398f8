package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/raptrainer/internal/events"
	"github.com/phrazzld/raptrainer/internal/service"
	"github.com/phrazzld/raptrainer/internal/wordqueue"
)

var (
	// ErrExhausted is returned when playback cannot continue until the queue
	// is reset.
	ErrExhausted = errors.New("no more words, reset to continue")

	// ErrStopped is returned by control calls after Stop.
	ErrStopped = errors.New("player is stopped")
)

// WordFeed is what the player draws words from. service.TrainerService
// satisfies it.
type WordFeed interface {
	NextWord(ctx context.Context) (service.Word, error)
	Reset(ctx context.Context) wordqueue.Status
	Status(ctx context.Context) wordqueue.Status
	DisplayDelay(ctx context.Context) time.Duration
}

// State is the lifecycle state of a Player.
type State int

const (
	// StateIdle means the player was never started.
	StateIdle State = iota
	// StatePlaying means a word loop is running.
	StatePlaying
	// StatePaused means the loop was paused by a caller or by exhaustion.
	StatePaused
	// StateStopped is terminal.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateIdle, StatePlaying, StatePaused, StateStopped} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown playback state %q", text)
}

// Player shows one word per display delay.
type Player struct {
	feed    WordFeed
	emitter events.EventEmitter
	logger  *slog.Logger

	// ctrl serializes control calls, including the wait for the loop to exit
	ctrl sync.Mutex

	// mu guards state; the loop takes it on exhaustion
	mu    sync.Mutex
	state State

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlayer creates an idle Player. emitter may be nil.
func NewPlayer(feed WordFeed, emitter events.EventEmitter, logger *slog.Logger) *Player {
	if feed == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("feed cannot be nil for Player")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for Player")
	}

	return &Player{
		feed:    feed,
		emitter: emitter,
		logger:  logger.With("component", "player"),
	}
}

// State returns the current lifecycle state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start shows a word immediately and keeps going. It is a no-op while
// already playing.
func (p *Player) Start(ctx context.Context) error {
	return p.play(ctx, true, false)
}

// Resume continues a paused loop; the next word comes after the display
// delay. It returns ErrExhausted when there is nothing left to show.
func (p *Player) Resume(ctx context.Context) error {
	return p.play(ctx, false, false)
}

// Restart reshuffles the queue and shows a word immediately.
func (p *Player) Restart(ctx context.Context) error {
	return p.play(ctx, true, true)
}

// Pause cancels the pending word and waits for the loop to exit.
func (p *Player) Pause(ctx context.Context) error {
	p.ctrl.Lock()
	defer p.ctrl.Unlock()

	switch p.State() {
	case StateStopped:
		return ErrStopped
	case StatePlaying:
	default:
		return nil
	}

	p.halt()
	p.setState(StatePaused)
	p.logger.Debug("playback paused")
	p.emit(ctx, events.TypePlaybackPaused)
	return nil
}

// Stop ends the loop for good. It is safe to call more than once.
func (p *Player) Stop() {
	p.ctrl.Lock()
	defer p.ctrl.Unlock()

	p.halt()
	p.setState(StateStopped)
}

func (p *Player) play(ctx context.Context, immediate, reset bool) error {
	p.ctrl.Lock()
	defer p.ctrl.Unlock()

	state := p.State()
	if state == StateStopped {
		return ErrStopped
	}
	if state == StatePlaying && !reset {
		return nil
	}

	p.halt()
	if reset {
		p.feed.Reset(ctx)
	}

	if !p.canContinue(ctx) {
		p.setState(StatePaused)
		return ErrExhausted
	}

	// The loop outlives the caller's request but keeps its values.
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.setState(StatePlaying)

	go p.run(loopCtx, done, immediate)

	p.logger.Debug("playback started", "immediate", immediate, "reset", reset)
	p.emit(ctx, events.TypePlaybackResumed)
	return nil
}

// canContinue reports whether the feed can serve at least one more word.
func (p *Player) canContinue(ctx context.Context) bool {
	status := p.feed.Status(ctx)
	if status.PoolSize == 0 {
		return false
	}
	return status.State != wordqueue.StateExhausted || status.Repeat
}

// halt cancels the running loop, if any, and waits for it to exit.
func (p *Player) halt() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

func (p *Player) run(ctx context.Context, done chan<- struct{}, immediate bool) {
	defer close(done)

	if immediate && !p.show(ctx) {
		return
	}

	timer := time.NewTimer(p.feed.DisplayDelay(ctx))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if !p.show(ctx) {
			return
		}
		timer.Reset(p.feed.DisplayDelay(ctx))
	}
}

// show draws one word. On exhaustion it pauses the player and returns false.
func (p *Player) show(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	_, err := p.feed.NextWord(ctx)
	if err == nil {
		return true
	}
	if !errors.Is(err, service.ErrNoWords) {
		p.logger.Error("failed to draw next word", "error", err)
	}

	p.mu.Lock()
	if ctx.Err() == nil {
		p.state = StatePaused
	}
	p.mu.Unlock()

	p.logger.Info("word queue exhausted, playback paused")
	p.emit(ctx, events.TypePlaybackPaused)
	return false
}

func (p *Player) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *Player) emit(ctx context.Context, eventType string) {
	if err := events.Emit(ctx, p.emitter, eventType, nil); err != nil {
		p.logger.Warn("failed to emit event", "event_type", eventType, "error", err)
	}
}
