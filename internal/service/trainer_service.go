package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/raptrainer/internal/domain"
	"github.com/phrazzld/raptrainer/internal/events"
	"github.com/phrazzld/raptrainer/internal/platform/logger"
	"github.com/phrazzld/raptrainer/internal/wordqueue"
)

// WordQueue is the engine surface the service drives.
// *wordqueue.Engine satisfies it.
type WordQueue interface {
	Initialize()
	CategoryIDs() []string
	ButtonLabels() []string
	SelectedCategories() []bool
	SetSelected(i int, selected bool) error
	SetSelection(selected []bool) error
	SelectAll()
	DeselectAll()
	ApplySelection()
	Next() (string, bool)
	ResetAndShuffle()
	Remaining() int
	Snapshot() wordqueue.Status
	Cache() *wordqueue.Cache
	SetDisplayDelay(d time.Duration)
	DisplayDelay() time.Duration
	SetRepeat(repeat bool)
	Repeat() bool
	Themes() []string
}

// Word is a served word and how many remain in the current permutation.
type Word struct {
	Text      string `json:"word"`
	Remaining int    `json:"remaining"`
}

// CategoryView describes one category for a selection UI.
type CategoryView struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Label     string `json:"label"`
	Selected  bool   `json:"selected"`
	WordCount int    `json:"word_count"`
}

// Settings are the user-adjustable playback settings.
type Settings struct {
	DisplayDelay time.Duration
	Repeat       bool
}

// SettingsUpdate changes the non-nil fields only.
type SettingsUpdate struct {
	DisplayDelay *time.Duration
	Repeat       *bool
}

// ThemesView is the themes list plus the theme currently picked.
type ThemesView struct {
	Themes  []string `json:"themes"`
	Current string   `json:"current"`
}

// TrainerService exposes the word trainer use cases.
// All methods are safe for concurrent use.
type TrainerService interface {
	// NextWord returns the next word, or ErrNoWords when none is available.
	NextWord(ctx context.Context) (Word, error)
	// Reset reshuffles the active pool and rewinds the queue.
	Reset(ctx context.Context) wordqueue.Status
	// Status returns a snapshot of the queue.
	Status(ctx context.Context) wordqueue.Status

	// Categories lists every category with its label and selection flag.
	Categories(ctx context.Context) []CategoryView
	// SetSelected flags one category without committing.
	SetSelected(ctx context.Context, index int, selected bool) error
	// SetSelection replaces every flag and commits atomically.
	SetSelection(ctx context.Context, selected []bool) (wordqueue.Status, error)
	// SelectAll flags every category without committing.
	SelectAll(ctx context.Context)
	// DeselectAll clears every flag without committing.
	DeselectAll(ctx context.Context)
	// ApplySelection commits the current flags.
	ApplySelection(ctx context.Context) wordqueue.Status

	Settings(ctx context.Context) Settings
	// DisplayDelay is the time each word stays on screen during playback.
	DisplayDelay(ctx context.Context) time.Duration
	UpdateSettings(ctx context.Context, update SettingsUpdate) Settings

	// Themes returns the themes list and the current theme.
	Themes(ctx context.Context) ThemesView
	// SelectTheme records the current theme. It does not affect word cycling.
	SelectTheme(ctx context.Context, theme string) error
	// CurrentTheme returns the recorded theme, empty when none was picked.
	CurrentTheme(ctx context.Context) string

	// Reload reads every word file again and resets the selection.
	Reload(ctx context.Context) wordqueue.Status
}

type trainerService struct {
	mu      sync.Mutex
	queue   WordQueue
	theme   string
	emitter events.EventEmitter
	logger  *slog.Logger
}

var _ TrainerService = (*trainerService)(nil)

// NewTrainerService creates a TrainerService over an initialized queue.
// emitter may be nil when no one listens for events.
func NewTrainerService(
	queue WordQueue,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TrainerService, error) {
	if queue == nil {
		return nil, domain.NewValidationError("queue", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		return nil, domain.NewValidationError("logger", "cannot be nil", domain.ErrValidation)
	}

	return &trainerService{
		queue:   queue,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "trainer_service")),
	}, nil
}

func (s *trainerService) NextWord(ctx context.Context) (Word, error) {
	s.mu.Lock()
	text, ok := s.queue.Next()
	remaining := s.queue.Remaining()
	s.mu.Unlock()

	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("no word available")
		s.emit(ctx, events.TypeQueueExhausted, nil)
		return Word{}, ErrNoWords
	}

	w := Word{Text: text, Remaining: remaining}
	s.emit(ctx, events.TypeWordShown, events.WordShownPayload{Word: w.Text, Remaining: w.Remaining})
	return w, nil
}

func (s *trainerService) Reset(ctx context.Context) wordqueue.Status {
	s.mu.Lock()
	s.queue.ResetAndShuffle()
	status := s.queue.Snapshot()
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("queue reset", "pool_size", status.PoolSize)
	s.emit(ctx, events.TypeQueueReset, nil)
	return status
}

func (s *trainerService) Status(ctx context.Context) wordqueue.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Snapshot()
}

func (s *trainerService) Categories(ctx context.Context) []CategoryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.queue.CategoryIDs()
	labels := s.queue.ButtonLabels()
	flags := s.queue.SelectedCategories()
	cache := s.queue.Cache()

	views := make([]CategoryView, 0, len(ids))
	for i, id := range ids {
		words, _ := cache.Words(id)
		views = append(views, CategoryView{
			Index:     i,
			ID:        id,
			Label:     labels[i],
			Selected:  flags[i],
			WordCount: len(words),
		})
	}
	return views
}

func (s *trainerService) SetSelected(ctx context.Context, index int, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queue.SetSelected(index, selected); err != nil {
		return NewServiceError("set_selected", "invalid category index", err)
	}
	return nil
}

func (s *trainerService) SetSelection(ctx context.Context, selected []bool) (wordqueue.Status, error) {
	s.mu.Lock()
	if err := s.queue.SetSelection(selected); err != nil {
		s.mu.Unlock()
		return wordqueue.Status{}, NewServiceError("set_selection", "invalid selection", err)
	}
	s.queue.ApplySelection()
	status := s.queue.Snapshot()
	s.mu.Unlock()

	s.emitSelection(ctx, status)
	return status, nil
}

func (s *trainerService) SelectAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SelectAll()
}

func (s *trainerService) DeselectAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.DeselectAll()
}

func (s *trainerService) ApplySelection(ctx context.Context) wordqueue.Status {
	s.mu.Lock()
	s.queue.ApplySelection()
	status := s.queue.Snapshot()
	s.mu.Unlock()

	s.emitSelection(ctx, status)
	return status
}

func (s *trainerService) Settings(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsLocked()
}

func (s *trainerService) DisplayDelay(ctx context.Context) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.DisplayDelay()
}

func (s *trainerService) UpdateSettings(ctx context.Context, update SettingsUpdate) Settings {
	s.mu.Lock()
	if update.DisplayDelay != nil {
		s.queue.SetDisplayDelay(*update.DisplayDelay)
	}
	if update.Repeat != nil {
		s.queue.SetRepeat(*update.Repeat)
	}
	settings := s.settingsLocked()
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Info("settings updated",
		"display_delay_ms", settings.DisplayDelay.Milliseconds(),
		"repeat", settings.Repeat)
	s.emit(ctx, events.TypeSettingsChanged, events.SettingsPayload{
		DisplayDelayMS: settings.DisplayDelay.Milliseconds(),
		Repeat:         settings.Repeat,
	})
	return settings
}

func (s *trainerService) Themes(ctx context.Context) ThemesView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ThemesView{Themes: s.queue.Themes(), Current: s.theme}
}

func (s *trainerService) SelectTheme(ctx context.Context, theme string) error {
	s.mu.Lock()
	found := false
	for _, t := range s.queue.Themes() {
		if t == theme {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return NewServiceError("select_theme", "theme is not in the themes list", domain.ErrUnknownTheme)
	}
	s.theme = theme
	s.mu.Unlock()

	s.emit(ctx, events.TypeThemeSelected, events.ThemePayload{Theme: theme})
	return nil
}

func (s *trainerService) CurrentTheme(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *trainerService) Reload(ctx context.Context) wordqueue.Status {
	s.mu.Lock()
	s.queue.Initialize()
	s.theme = ""
	status := s.queue.Snapshot()
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Info("word files reloaded", "pool_size", status.PoolSize)
	s.emitSelection(ctx, status)
	return status
}

func (s *trainerService) settingsLocked() Settings {
	return Settings{
		DisplayDelay: s.queue.DisplayDelay(),
		Repeat:       s.queue.Repeat(),
	}
}

func (s *trainerService) emitSelection(ctx context.Context, status wordqueue.Status) {
	s.emit(ctx, events.TypeSelectionApplied, events.SelectionPayload{
		ActiveCategories: status.ActiveCategories,
		PoolSize:         status.PoolSize,
	})
}

// emit publishes an event outside the lock; handler failures are logged only.
func (s *trainerService) emit(ctx context.Context, eventType string, payload interface{}) {
	if err := events.Emit(ctx, s.emitter, eventType, payload); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit event",
			"event_type", eventType,
			"error", err)
	}
}
