package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
)

// SessionStore defines the interface for study session persistence.
type SessionStore interface {
	// Create saves a new open study session to the store.
	// Returns validation errors from the domain StudySession if data is
	// invalid and ErrGroupNotFound if the owning group does not exist.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a study session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// List returns one page of sessions plus the total number of pages.
	// The sort key must be one of SessionSortKeys.
	List(ctx context.Context, page Page, sort Sort) ([]*domain.StudySession, int, error)

	// ListRecent returns up to limit sessions ordered most-recent-first by
	// creation timestamp, optionally filtered to a single group.
	ListRecent(ctx context.Context, limit int, groupID *uuid.UUID) ([]*domain.StudySession, error)

	// Close sets the session's end timestamp via a compare-and-set on the
	// end timestamp being unset, so two concurrent closes race safely even
	// across processes: exactly one succeeds.
	// Returns ErrAlreadyClosed if the session is already closed and
	// ErrSessionNotFound if it does not exist.
	Close(ctx context.Context, id uuid.UUID, endedAt time.Time) error
}
