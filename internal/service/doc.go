// Package service implements the application use cases of the trainer on top
// of the word queue engine.
//
// The engine itself is single-threaded; the service owns it, serializes every
// call with a mutex and publishes events describing each state change. HTTP
// handlers, the websocket stream and the playback loop all go through it.
package service
