// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to the server, word source and playback settings while keeping
// configuration details separate from the trainer logic.
package config
