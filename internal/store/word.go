package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
)

// WordStore defines the interface for vocabulary word persistence.
// Words are created at vocabulary-load time and are immutable thereafter;
// there are no update or delete operations.
type WordStore interface {
	// CreateBatch saves a batch of words to the store, typically during a
	// vocabulary import. All words must be valid according to domain
	// validation rules; validation errors abort the whole batch.
	CreateBatch(ctx context.Context, words []*domain.Word) error

	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// List returns one page of words plus the total number of pages.
	// The sort key must be one of WordSortKeys.
	List(ctx context.Context, page Page, sort Sort) ([]*domain.Word, int, error)
}
