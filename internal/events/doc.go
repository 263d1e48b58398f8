// Package events provides the trainer's event types and an in-memory emitter.
//
// The service layer and the playback loop emit events (a word was shown, the
// queue ran out, the selection changed) without knowing who consumes them.
// Handlers include the websocket stream and the CLI console printer.
//
// The primary components are:
// - Event: a typed, timestamped notification with a JSON payload
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
