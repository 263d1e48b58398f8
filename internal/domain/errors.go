package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrLabelFormat is returned when a category identifier does not follow
	// the underscore-separated naming convention used to derive labels.
	ErrLabelFormat = errors.New("malformed category identifier")

	// ErrCategoryIndex is returned when a selection index does not address a cached category.
	ErrCategoryIndex = errors.New("category index out of range")

	// ErrSelectionLength is returned when a full selection does not have one
	// flag per cached category.
	ErrSelectionLength = errors.New("selection length does not match category count")

	// ErrUnknownTheme is returned when a theme is not part of the loaded themes list.
	ErrUnknownTheme = errors.New("unknown theme")
)

// LabelFormatError names the category identifier that could not be turned
// into a label.
type LabelFormatError struct {
	Identifier string
	Segments   int
}

// Error implements the error interface for LabelFormatError.
func (e *LabelFormatError) Error() string {
	return fmt.Sprintf("%s: %q has %d segment(s), need at least 2", ErrLabelFormat, e.Identifier, e.Segments)
}

// Unwrap returns ErrLabelFormat so callers can use errors.Is.
func (e *LabelFormatError) Unwrap() error {
	return ErrLabelFormat
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError wrapping err.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}
