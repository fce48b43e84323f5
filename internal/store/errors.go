package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrWordNotFound, ErrSessionNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrIntegrity is returned when an operation would violate a ledger
	// invariant, such as appending a review to a session that was already
	// closed before the review's timestamp. Integrity violations are never
	// silently corrected.
	ErrIntegrity = errors.New("ledger integrity violation")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidSortKey is returned when a list operation is requested with
	// a sort key outside the allowed set for the entity. Callers must treat
	// this as a validation error; it is never silently defaulted.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidPage is returned when pagination parameters are malformed
	// (page numbers are 1-based, page size must be positive).
	ErrInvalidPage = errors.New("invalid page parameters")

	// ErrTimeout is returned when a store operation exceeds its
	// caller-supplied deadline. It is distinct from ErrUnavailable so the
	// transport layer can distinguish slow storage from absent storage.
	ErrTimeout = errors.New("store operation timed out")

	// ErrUnavailable is returned when the underlying store cannot be
	// reached at all. The core never substitutes placeholder data for an
	// unavailable store.
	ErrUnavailable = errors.New("store unavailable")

	// Entity-specific "not found" errors

	// ErrWordNotFound indicates that the requested word does not exist in the store.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrGroupNotFound indicates that the requested group does not exist in the store.
	ErrGroupNotFound = fmt.Errorf("%w: group", ErrNotFound)

	// ErrSessionNotFound indicates that the requested study session does not exist in the store.
	ErrSessionNotFound = fmt.Errorf("%w: study session", ErrNotFound)

	// ErrActivityNotFound indicates that the requested study activity does not exist in the store.
	ErrActivityNotFound = fmt.Errorf("%w: study activity", ErrNotFound)

	// Entity-specific integrity errors

	// ErrSessionClosed indicates that a review was appended to a session
	// that closed before the review's timestamp.
	ErrSessionClosed = fmt.Errorf("%w: session closed before review", ErrIntegrity)

	// ErrAlreadyClosed indicates a second close of an already-closed
	// session. Double-close is an error by contract, not an idempotent
	// no-op, so session-lifecycle bugs surface instead of hiding.
	ErrAlreadyClosed = fmt.Errorf("%w: session already closed", ErrIntegrity)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIntegrityError checks if the error is any kind of ledger integrity
// violation, including the double-close specialization.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrIntegrity)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "word", "study_session")
	Operation string // The operation that failed (e.g., "append", "list")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
