package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewWordReviewItem(t *testing.T) {
	t.Parallel() // Enable parallel execution
	wordID := uuid.New()
	sessionID := uuid.New()

	review, err := NewWordReviewItem(wordID, sessionID, true)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if review.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if review.WordID != wordID {
		t.Errorf("Expected word ID %s, got %s", wordID, review.WordID)
	}

	if review.StudySessionID != sessionID {
		t.Errorf("Expected session ID %s, got %s", sessionID, review.StudySessionID)
	}

	if !review.Correct {
		t.Error("Expected correct flag to be true")
	}

	if review.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid word ID
	_, err = NewWordReviewItem(uuid.Nil, sessionID, true)
	if err != ErrReviewWordIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrReviewWordIDEmpty, err)
	}

	// Test invalid session ID
	_, err = NewWordReviewItem(wordID, uuid.Nil, false)
	if err != ErrReviewSessionIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrReviewSessionIDEmpty, err)
	}
}
