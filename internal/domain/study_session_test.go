package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewStudySession(t *testing.T) {
	t.Parallel() // Enable parallel execution
	groupID := uuid.New()

	session, err := NewStudySession(groupID)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if session.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if session.GroupID != groupID {
		t.Errorf("Expected group ID %s, got %s", groupID, session.GroupID)
	}

	if !session.IsOpen() {
		t.Error("Expected new session to be open")
	}

	if session.EndedAt != nil {
		t.Errorf("Expected nil EndedAt, got %v", session.EndedAt)
	}

	// Test invalid group ID
	_, err = NewStudySession(uuid.Nil)
	if err != ErrSessionGroupIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrSessionGroupIDEmpty, err)
	}
}

func TestStudySessionEnd(t *testing.T) {
	t.Parallel() // Enable parallel execution
	session, err := NewStudySession(uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	endedAt := session.CreatedAt.Add(10 * time.Minute)
	if err := session.End(endedAt); err != nil {
		t.Fatalf("Expected no error closing open session, got %v", err)
	}

	if session.IsOpen() {
		t.Error("Expected session to be closed after End")
	}

	if session.EndedAt == nil || !session.EndedAt.Equal(endedAt) {
		t.Errorf("Expected EndedAt %v, got %v", endedAt, session.EndedAt)
	}

	// Closing is a one-way transition
	if err := session.End(endedAt.Add(time.Minute)); err != ErrSessionAlreadyEnded {
		t.Errorf("Expected error %v, got %v", ErrSessionAlreadyEnded, err)
	}

	// A session cannot end before it starts
	fresh, _ := NewStudySession(uuid.New())
	if err := fresh.End(fresh.CreatedAt.Add(-time.Second)); err != ErrSessionEndBeforeStart {
		t.Errorf("Expected error %v, got %v", ErrSessionEndBeforeStart, err)
	}
}

func TestStudySessionOpenAt(t *testing.T) {
	t.Parallel() // Enable parallel execution
	session, _ := NewStudySession(uuid.New())

	later := session.CreatedAt.Add(time.Hour)
	if !session.OpenAt(later) {
		t.Error("Expected open session to be open at any instant")
	}

	endedAt := session.CreatedAt.Add(30 * time.Minute)
	if err := session.End(endedAt); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	testCases := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{
			name:     "before close",
			at:       endedAt.Add(-time.Minute),
			expected: true,
		},
		{
			name:     "exactly at close",
			at:       endedAt,
			expected: true,
		},
		{
			name:     "after close",
			at:       endedAt.Add(time.Second),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := session.OpenAt(tc.at); got != tc.expected {
				t.Errorf("OpenAt(%v) = %v, expected %v", tc.at, got, tc.expected)
			}
		})
	}
}
