package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
)

// ReviewFilter narrows a review listing to a word, session, or group.
// Fields are combined with AND when more than one is set.
type ReviewFilter struct {
	WordID    *uuid.UUID
	SessionID *uuid.UUID
	GroupID   *uuid.UUID
}

// ReviewStore defines the interface for the append-only review ledger.
// Review items are never mutated or deleted once appended; the only
// destructive operation is the administrative ResetAll.
type ReviewStore interface {
	// Append durably adds a review event to the ledger. The append is
	// atomic and enforces the session-lifecycle invariant: the referenced
	// session must still be logically open at the review's timestamp.
	// Returns ErrSessionClosed (an ErrIntegrity) if the session closed
	// before the review, ErrSessionNotFound if the session is unknown, and
	// ErrWordNotFound if the word is unknown.
	Append(ctx context.Context, review *domain.WordReviewItem) error

	// List returns one page of review items matching the filter plus the
	// total number of pages. The sort key must be one of ReviewSortKeys.
	List(ctx context.Context, filter ReviewFilter, page Page, sort Sort) ([]domain.WordReviewItem, int, error)

	// ListByWord returns every review of the given word, ordered
	// ascending by creation timestamp, as the aggregate calculator expects.
	ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.WordReviewItem, error)

	// ListBySession returns every review recorded inside the given
	// session, ordered ascending by creation timestamp.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.WordReviewItem, error)

	// ListByGroup returns every review of every word belonging to the
	// given group, ordered ascending by creation timestamp.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.WordReviewItem, error)

	// ResetAll clears the entire review ledger. This is the destructive
	// administrative reset; callers must gate it behind an explicit
	// confirmation and must flush derived-statistics caches afterwards.
	ResetAll(ctx context.Context) error
}
