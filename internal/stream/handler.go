package stream

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/raptrainer/internal/events"
	"golang.org/x/net/websocket"
)

// DefaultBufferSize is how many events a slow client may lag behind before
// events are dropped for it.
const DefaultBufferSize = 64

// Registry is where connections subscribe. *events.InMemoryEventEmitter
// satisfies it.
type Registry interface {
	RegisterHandler(handler events.EventHandler)
	UnregisterHandler(handler events.EventHandler)
}

// Hello is the first message sent on every connection.
type Hello struct {
	Type string `json:"type"`
}

// Handler upgrades requests to websockets and streams events to them.
type Handler struct {
	registry   Registry
	logger     *slog.Logger
	bufferSize int
}

// NewHandler creates a Handler subscribing connections to registry.
func NewHandler(registry Registry, logger *slog.Logger) *Handler {
	if registry == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("registry cannot be nil for stream Handler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for stream Handler")
	}

	return &Handler{
		registry:   registry,
		logger:     logger.With("component", "stream"),
		bufferSize: DefaultBufferSize,
	}
}

// ServeHTTP performs the websocket handshake. Origins are not checked; the
// trainer is meant to be served to a local browser.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	server := websocket.Server{
		Handler: func(ws *websocket.Conn) {
			h.Serve(NewWsConn(ws))
		},
	}
	server.ServeHTTP(w, r)
}

// Serve streams events to conn until the client disconnects or a send fails.
// It closes conn before returning.
func (h *Handler) Serve(conn Connector) {
	defer conn.Close()

	log := h.logger
	if req := conn.Request(); req != nil {
		log = log.With("remote_addr", req.RemoteAddr)
	}

	sub := &subscriber{
		events: make(chan *events.Event, h.bufferSize),
		logger: log,
	}
	h.registry.RegisterHandler(sub)
	defer h.registry.UnregisterHandler(sub)

	log.Info("stream client connected")
	defer log.Info("stream client disconnected")

	if err := conn.Send(Hello{Type: "hello"}); err != nil {
		log.Debug("failed to send hello", "error", err)
		return
	}

	// Client messages are ignored; a read error means the client went away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		var discard interface{}
		for {
			if err := conn.Recv(&discard); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case event := <-sub.events:
			if err := conn.Send(event); err != nil {
				log.Debug("failed to send event", "event_type", event.Type, "error", err)
				return
			}
		}
	}
}

// subscriber buffers events for one connection without blocking the emitter.
type subscriber struct {
	events chan *events.Event
	logger *slog.Logger
}

func (s *subscriber) HandleEvent(_ context.Context, event *events.Event) error {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("stream client is lagging, event dropped", "event_type", event.Type)
	}
	return nil
}
