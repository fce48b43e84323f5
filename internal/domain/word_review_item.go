package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// WordReviewItem-specific validation errors
var (
	// ErrReviewIDEmpty is returned when a review ID is empty or nil.
	ErrReviewIDEmpty = errors.New("review ID cannot be empty")

	// ErrReviewWordIDEmpty is returned when a review's word ID is empty or nil.
	ErrReviewWordIDEmpty = errors.New("review word ID cannot be empty")

	// ErrReviewSessionIDEmpty is returned when a review's session ID is empty or nil.
	ErrReviewSessionIDEmpty = errors.New("review session ID cannot be empty")
)

// WordReviewItem is the atomic, append-only study event: a single answer
// given for a single word inside a study session. Once created it is
// never mutated or deleted, and it is the sole source of truth for all
// derived statistics.
type WordReviewItem struct {
	ID             uuid.UUID `json:"id"`
	WordID         uuid.UUID `json:"word_id"`
	StudySessionID uuid.UUID `json:"study_session_id"`
	Correct        bool      `json:"correct"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewWordReviewItem creates a new WordReviewItem for the given word and
// session with the given correctness flag.
// It generates a new UUID for the review ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewWordReviewItem(wordID, sessionID uuid.UUID, correct bool) (*WordReviewItem, error) {
	review := &WordReviewItem{
		ID:             uuid.New(),
		WordID:         wordID,
		StudySessionID: sessionID,
		Correct:        correct,
		CreatedAt:      time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the WordReviewItem has valid data.
// Returns an error if any field fails validation.
func (r *WordReviewItem) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.WordID == uuid.Nil {
		return ErrReviewWordIDEmpty
	}

	if r.StudySessionID == uuid.Nil {
		return ErrReviewSessionIDEmpty
	}

	return nil
}
