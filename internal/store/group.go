package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
)

// GroupListing pairs a group with its current word count for list views.
// The count is computed at read time from the membership relation.
type GroupListing struct {
	Group     domain.Group `json:"group"`
	WordCount int          `json:"word_count"`
}

// GroupStore defines the interface for word group persistence.
// Group identity is immutable after creation; only membership can grow.
type GroupStore interface {
	// Create saves a new group to the store.
	// Returns validation errors from the domain Group if data is invalid.
	Create(ctx context.Context, group *domain.Group) error

	// GetByID retrieves a group by its unique ID.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// List returns one page of groups with their word counts plus the
	// total number of pages. The sort key must be one of GroupSortKeys.
	// Listings are always read fresh; pagination correctness under
	// concurrent group creation takes priority over latency here.
	List(ctx context.Context, page Page, sort Sort) ([]*GroupListing, int, error)

	// AddWords grows the group's membership with the given word IDs.
	// Membership is many-to-many; adding a word already in the group is a
	// no-op. Returns ErrGroupNotFound if the group does not exist and
	// ErrWordNotFound if any word does not exist.
	AddWords(ctx context.Context, groupID uuid.UUID, wordIDs []uuid.UUID) error

	// WordIDs returns the IDs of all words currently in the group.
	// Returns ErrGroupNotFound if the group does not exist.
	WordIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
}
