package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/raptrainer/internal/api/shared"
	"github.com/phrazzld/raptrainer/internal/domain"
	"github.com/phrazzld/raptrainer/internal/playback"
	"github.com/phrazzld/raptrainer/internal/platform/logger"
	"github.com/phrazzld/raptrainer/internal/service"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrNoWords):
		return http.StatusNoContent

	case errors.Is(err, domain.ErrCategoryIndex):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrSelectionLength),
		errors.Is(err, domain.ErrUnknownTheme),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, playback.ErrExhausted),
		errors.Is(err, playback.ErrStopped):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrNoWords),
		errors.Is(err, playback.ErrExhausted):
		return "No more words, reset to continue"
	case errors.Is(err, playback.ErrStopped):
		return "Playback is stopped"
	case errors.Is(err, domain.ErrCategoryIndex):
		return "Category not found"
	case errors.Is(err, domain.ErrSelectionLength):
		return "Selection must have one flag per category"
	case errors.Is(err, domain.ErrUnknownTheme):
		return "Unknown theme"
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message naming
// the offending field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", toSnakeCase(fe.Field()), validationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// HandleAPIError writes the mapped status and safe message for err.
// A non-empty message overrides the safe one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusNoContent {
		shared.RespondNoContent(w)
		return
	}
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// handleDecodeError answers a request body that failed to decode or validate.
func handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.As(err, new(validator.ValidationErrors)):
		log.Debug("request validation failed", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
	default:
		log.Debug("invalid request body", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
	}
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too small"
	case "max":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
