// Package stream pushes trainer events to websocket clients. Each connection
// subscribes to the event emitter for as long as it stays open.
package stream
