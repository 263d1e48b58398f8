package wordqueue

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/phrazzld/raptrainer/internal/domain"
)

// DefaultDisplayDelay is the initial time each word stays on screen.
const DefaultDisplayDelay = 5000 * time.Millisecond

// Source supplies the categories and themes an Engine serves.
type Source interface {
	LoadCategories() []domain.Category
	LoadThemes() []string
}

// Engine selects categories and serves their words as a shuffled queue.
type Engine struct {
	source  Source
	logger  *slog.Logger
	shuffle func(n int, swap func(i, j int))

	cache    *Cache
	selected []bool
	active   []string
	pool     []string
	queue    []string
	cursor   int
	themes   []string

	delay       time.Duration
	repeat      bool
	initialized bool
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand makes the engine shuffle with r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.shuffle = r.Shuffle
		}
	}
}

// WithDisplayDelay sets the initial display delay.
func WithDisplayDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.delay = d
	}
}

// WithRepeat sets the initial repeat flag.
func WithRepeat(repeat bool) Option {
	return func(e *Engine) {
		e.repeat = repeat
	}
}

// NewEngine creates an uninitialized Engine reading from source.
func NewEngine(source Source, logger *slog.Logger, opts ...Option) *Engine {
	if source == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("source cannot be nil for Engine")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for Engine")
	}

	e := &Engine{
		source:  source,
		logger:  logger.With("component", "word_queue"),
		shuffle: rand.Shuffle,
		cache:   NewCache(nil, nil),
		delay:   DefaultDisplayDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize loads every category and the themes list from the source,
// selects the first category only and shuffles its words into the queue.
// Calling it again reloads everything and resets the selection.
func (e *Engine) Initialize() {
	e.cache = NewCache(e.source.LoadCategories(), e.logger)

	e.selected = make([]bool, e.cache.Len())
	if len(e.selected) > 0 {
		e.selected[0] = true
	} else {
		e.logger.Warn("no categories loaded, word queue is empty")
	}

	e.initialized = true
	e.ApplySelection()

	e.themes = cloneStrings(e.source.LoadThemes())

	e.logger.Info("word queue initialized",
		"categories", e.cache.Len(),
		"pool_size", len(e.pool),
		"themes", len(e.themes))
}

// Cache returns the category cache built by the last Initialize.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// CategoryIDs returns the cached category identifiers in selection order.
func (e *Engine) CategoryIDs() []string {
	return e.cache.IDs()
}

// ButtonLabels returns one human readable label per cached category.
// Identifiers that do not follow the naming convention are used verbatim.
func (e *Engine) ButtonLabels() []string {
	labels := make([]string, 0, e.cache.Len())
	for _, id := range e.cache.ids {
		label, err := domain.DeriveLabel(id)
		if err != nil {
			e.logger.Warn("using raw identifier as label", "category", id, "error", err)
			label = id
		}
		labels = append(labels, label)
	}
	return labels
}

// SelectedCategories returns a copy of the selection flags.
func (e *Engine) SelectedCategories() []bool {
	out := make([]bool, len(e.selected))
	copy(out, e.selected)
	return out
}

// SetSelected sets the flag of category i. The pool is unchanged until
// ApplySelection is called.
func (e *Engine) SetSelected(i int, selected bool) error {
	if i < 0 || i >= len(e.selected) {
		return domain.NewValidationError("index", "is out of range", domain.ErrCategoryIndex)
	}
	e.selected[i] = selected
	return nil
}

// SetSelection replaces every flag at once. The pool is unchanged until
// ApplySelection is called.
func (e *Engine) SetSelection(selected []bool) error {
	if len(selected) != len(e.selected) {
		return domain.NewValidationError("selected", "must have one flag per category", domain.ErrSelectionLength)
	}
	copy(e.selected, selected)
	return nil
}

// SelectAll flags every category; ApplySelection commits it.
func (e *Engine) SelectAll() {
	for i := range e.selected {
		e.selected[i] = true
	}
}

// DeselectAll clears every flag; ApplySelection commits it.
func (e *Engine) DeselectAll() {
	for i := range e.selected {
		e.selected[i] = false
	}
}

// ApplySelection rebuilds the active categories and the pool from the
// current flags, reshuffles and rewinds the queue.
func (e *Engine) ApplySelection() {
	e.active = e.active[:0]
	for i, on := range e.selected {
		if on {
			e.active = append(e.active, e.cache.ID(i))
		}
	}

	e.pool = e.pool[:0]
	for _, id := range e.active {
		e.pool = e.cache.appendWords(e.pool, id)
	}

	e.ResetAndShuffle()

	e.logger.Debug("selection applied",
		"active_categories", len(e.active),
		"pool_size", len(e.pool))
}

// ActiveCategories returns the IDs of the committed selection in cache order.
func (e *Engine) ActiveCategories() []string {
	return cloneStrings(e.active)
}

// Pool returns a copy of the active pool in cache order.
func (e *Engine) Pool() []string {
	return cloneStrings(e.pool)
}

// Next returns the next queued word. When the queue is exhausted and repeat
// is on, the pool is reshuffled and the first word of the new permutation is
// returned. It returns false when no word is available; an empty pool always
// returns false.
func (e *Engine) Next() (string, bool) {
	if len(e.pool) == 0 {
		return "", false
	}

	if e.cursor >= len(e.queue) {
		if !e.repeat {
			return "", false
		}
		e.ResetAndShuffle()
	}

	word := e.queue[e.cursor]
	e.cursor++
	return word, true
}

// ResetAndShuffle replaces the queue with a fresh uniform permutation of the
// pool and rewinds the cursor.
func (e *Engine) ResetAndShuffle() {
	e.cursor = 0
	e.queue = append(e.queue[:0], e.pool...)
	e.shuffle(len(e.queue), func(i, j int) {
		e.queue[i], e.queue[j] = e.queue[j], e.queue[i]
	})
}

// IsExhausted reports whether the cursor reached the end of the queue.
func (e *Engine) IsExhausted() bool {
	return e.cursor >= len(e.queue)
}

// Remaining returns how many words are left before exhaustion.
func (e *Engine) Remaining() int {
	return len(e.queue) - e.cursor
}

// State returns the coarse lifecycle state.
func (e *Engine) State() State {
	switch {
	case !e.initialized:
		return StateUninitialized
	case e.IsExhausted():
		return StateExhausted
	default:
		return StateReady
	}
}

// SetDisplayDelay stores the delay between words. No bounds are enforced.
func (e *Engine) SetDisplayDelay(d time.Duration) {
	e.delay = d
}

// DisplayDelay returns the delay between words.
func (e *Engine) DisplayDelay() time.Duration {
	return e.delay
}

// SetRepeat toggles automatic reshuffling on exhaustion.
func (e *Engine) SetRepeat(repeat bool) {
	e.repeat = repeat
}

// Repeat reports whether exhaustion reshuffles automatically.
func (e *Engine) Repeat() bool {
	return e.repeat
}

// Themes returns a copy of the themes list.
func (e *Engine) Themes() []string {
	return cloneStrings(e.themes)
}

// Snapshot returns the current Status.
func (e *Engine) Snapshot() Status {
	return Status{
		State:            e.State(),
		PoolSize:         len(e.pool),
		Position:         e.cursor,
		Remaining:        e.Remaining(),
		Repeat:           e.repeat,
		DisplayDelay:     e.delay,
		ActiveCategories: e.ActiveCategories(),
	}
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
