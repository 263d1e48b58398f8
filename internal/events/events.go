package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the trainer.
const (
	TypeWordShown        = "word.shown"
	TypeQueueExhausted   = "queue.exhausted"
	TypeQueueReset       = "queue.reset"
	TypeSelectionApplied = "selection.applied"
	TypePlaybackPaused   = "playback.paused"
	TypePlaybackResumed  = "playback.resumed"
	TypeSettingsChanged  = "settings.changed"
	TypeThemeSelected    = "theme.selected"
)

// Event is a notification about a change in trainer state.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// WordShownPayload accompanies TypeWordShown.
type WordShownPayload struct {
	Word      string `json:"word"`
	Remaining int    `json:"remaining"`
}

// SelectionPayload accompanies TypeSelectionApplied.
type SelectionPayload struct {
	ActiveCategories []string `json:"active_categories"`
	PoolSize         int      `json:"pool_size"`
}

// SettingsPayload accompanies TypeSettingsChanged.
type SettingsPayload struct {
	DisplayDelayMS int64 `json:"display_delay_ms"`
	Repeat         bool  `json:"repeat"`
}

// ThemePayload accompanies TypeThemeSelected.
type ThemePayload struct {
	Theme string `json:"theme"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
// A nil payload produces an event without payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   raw,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}

// Emit builds an event and publishes it through emitter. A nil emitter is a no-op.
func Emit(ctx context.Context, emitter EventEmitter, eventType string, payload interface{}) error {
	if emitter == nil {
		return nil
	}
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	return emitter.EmitEvent(ctx, event)
}
