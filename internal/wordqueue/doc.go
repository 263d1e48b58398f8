// Package wordqueue holds the category cache and the word queue engine.
//
// The engine keeps one selection flag per cached category, derives the active
// pool from the selected categories (concatenated in cache order), and serves
// a shuffled permutation of that pool one word at a time. When the queue runs
// out it either reports exhaustion or, with repeat enabled, reshuffles and
// continues.
//
// An Engine is not safe for concurrent use. Callers that share one across
// goroutines must serialize access, as internal/service does.
package wordqueue
