// Package api exposes the trainer over HTTP. Handlers decode and validate
// requests, call the trainer service or the player and write JSON responses;
// internal errors are mapped to status codes in one place.
package api
