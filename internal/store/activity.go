package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
)

// ActivityStore defines the interface for study activity persistence.
// Activities are immutable after creation.
type ActivityStore interface {
	// Create saves a new study activity to the store.
	// Returns ErrSessionNotFound if the owning session does not exist.
	Create(ctx context.Context, activity *domain.StudyActivity) error

	// ListBySession returns all activities launched inside the given
	// session, ordered ascending by creation timestamp.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.StudyActivity, error)
}
