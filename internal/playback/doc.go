// Package playback runs the timed word loop: it draws a word from a feed,
// waits the display delay and draws again until paused, stopped or out of
// words.
package playback
