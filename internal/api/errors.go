package api

import (
	"errors"
	"net/http"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/service/study"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Confirmation errors
	case errors.Is(err, study.ErrResetNotConfirmed):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors: the ledger invariant or the session lifecycle
	// rejected the write
	case store.IsIntegrityError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrInvalidSortKey),
		errors.Is(err, store.ErrInvalidPage),
		errors.Is(err, study.ErrNoWords):
		return http.StatusBadRequest

	// Store reachability errors
	case errors.Is(err, store.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, study.ErrResetNotConfirmed):
		return "History reset requires the confirmation token"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, store.ErrGroupNotFound):
		return "Group not found"
	case errors.Is(err, store.ErrSessionNotFound):
		return "Study session not found"
	case errors.Is(err, store.ErrActivityNotFound):
		return "Study activity not found"
	case store.IsNotFoundError(err):
		return "Not found"

	case errors.Is(err, store.ErrSessionClosed):
		return "Study session is closed"
	case errors.Is(err, store.ErrAlreadyClosed):
		return "Study session already closed"

	case errors.Is(err, store.ErrInvalidSortKey):
		return "Invalid sort key"
	case errors.Is(err, store.ErrInvalidPage):
		return "Invalid pagination parameters"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, study.ErrNoWords):
		return "No words to import"

	case errors.Is(err, store.ErrTimeout):
		return "Storage timed out"
	case errors.Is(err, store.ErrUnavailable):
		return "Storage unavailable"

	default:
		return "An unexpected error occurred"
	}
}
