package events

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
)

// InMemoryEventEmitter is a simple implementation of the EventEmitter interface
// that stores registered handlers in memory and dispatches events to them.
type InMemoryEventEmitter struct {
	handlers []*registration
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		handlers: make([]*registration, 0),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// registration is one slot in the handler list; its address identifies it.
type registration struct {
	handler EventHandler
}

// RegisterHandler adds a new event handler to receive events.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.add(handler)
}

// Subscribe registers handler and returns a func that removes exactly this
// registration. It works for any handler, including a HandlerFunc, and is
// safe to call more than once.
func (e *InMemoryEventEmitter) Subscribe(handler EventHandler) (unsubscribe func()) {
	reg := e.add(handler)
	var once sync.Once
	return func() {
		once.Do(func() {
			e.remove(func(r *registration) bool { return r == reg })
		})
	}
}

// UnregisterHandler removes the first registration of handler. Handlers of
// uncomparable types, such as HandlerFunc, cannot be matched this way and are
// left in place with a warning; use Subscribe for those.
func (e *InMemoryEventEmitter) UnregisterHandler(handler EventHandler) {
	if handler == nil || !reflect.TypeOf(handler).Comparable() {
		e.logger.Warn("cannot unregister uncomparable event handler",
			"handler_type", reflect.TypeOf(handler))
		return
	}
	e.remove(func(r *registration) bool {
		return reflect.TypeOf(r.handler) == reflect.TypeOf(handler) && r.handler == handler
	})
}

func (e *InMemoryEventEmitter) add(handler EventHandler) *registration {
	reg := &registration{handler: handler}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, reg)
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))
	return reg
}

func (e *InMemoryEventEmitter) remove(match func(*registration) bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, r := range e.handlers {
		if match(r) {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			break
		}
	}
	e.logger.Debug("unregistered event handler", "handler_count", len(e.handlers))
}

// HandlerCount returns the number of registered handlers.
func (e *InMemoryEventEmitter) HandlerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// EmitEvent publishes the given event to all registered handlers.
// If any handler returns an error, the event will still be sent to all other handlers,
// and the first error encountered will be returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	handlers := make([]EventHandler, 0, len(e.handlers))
	for _, r := range e.handlers {
		handlers = append(handlers, r.handler)
	}
	e.mu.RUnlock()

	e.logger.Debug("emitting event",
		"event_id", event.ID,
		"event_type", event.Type,
		"handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
