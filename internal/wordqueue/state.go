package wordqueue

import (
	"encoding/json"
	"fmt"
	"time"
)

// State is the coarse lifecycle state of an Engine.
type State int

const (
	// StateUninitialized means Initialize has not been called yet.
	StateUninitialized State = iota
	// StateReady means the queue still has words to serve.
	StateReady
	// StateExhausted means the cursor reached the end of the queue.
	StateExhausted
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Status is a read-only snapshot of the engine.
type Status struct {
	State            State         `json:"state"`
	PoolSize         int           `json:"pool_size"`
	Position         int           `json:"position"`
	Remaining        int           `json:"remaining"`
	Repeat           bool          `json:"repeat"`
	DisplayDelay     time.Duration `json:"-"`
	ActiveCategories []string      `json:"active_categories"`
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateUninitialized, StateReady, StateExhausted} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown queue state %q", text)
}

// statusFields drops Status's methods so the JSON codecs below can embed it.
type statusFields Status

type statusJSON struct {
	statusFields
	DisplayDelayMS int64 `json:"display_delay_ms"`
}

// MarshalJSON encodes the display delay in milliseconds as display_delay_ms.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusJSON{
		statusFields:   statusFields(s),
		DisplayDelayMS: s.DisplayDelay.Milliseconds(),
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	var v statusJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Status(v.statusFields)
	s.DisplayDelay = time.Duration(v.DisplayDelayMS) * time.Millisecond
	return nil
}
