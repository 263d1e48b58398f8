// Package domain contains the core entities of the trainer: word categories,
// the label convention used to present them, and the errors shared by the
// loader, the queue engine and the service layer. It has no dependencies on
// infrastructure or delivery mechanisms.
package domain
