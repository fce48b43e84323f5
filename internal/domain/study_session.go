package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudySession-specific validation errors
var (
	// ErrSessionIDEmpty is returned when a session ID is empty or nil.
	ErrSessionIDEmpty = errors.New("study session ID cannot be empty")

	// ErrSessionGroupIDEmpty is returned when a session's group ID is empty or nil.
	ErrSessionGroupIDEmpty = errors.New("study session group ID cannot be empty")

	// ErrSessionEndBeforeStart is returned when a session's end timestamp
	// precedes its start timestamp.
	ErrSessionEndBeforeStart = errors.New("study session cannot end before it starts")

	// ErrSessionAlreadyEnded is returned when attempting to end a session
	// that already has an end timestamp. Ending a session is a one-way
	// transition and is never repeated or reversed.
	ErrSessionAlreadyEnded = errors.New("study session already ended")
)

// StudySession represents one sitting in which a learner studies a group.
// A session starts open (EndedAt nil) and transitions to closed exactly
// once; the transition is never reversed.
type StudySession struct {
	ID        uuid.UUID  `json:"id"`
	GroupID   uuid.UUID  `json:"group_id"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// NewStudySession creates a new open StudySession for the given group.
// It generates a new UUID for the session ID and sets the start timestamp.
// Returns an error if validation fails.
func NewStudySession(groupID uuid.UUID) (*StudySession, error) {
	session := &StudySession{
		ID:        uuid.New(),
		GroupID:   groupID,
		CreatedAt: time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
// Returns an error if any field fails validation.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.GroupID == uuid.Nil {
		return ErrSessionGroupIDEmpty
	}

	if s.EndedAt != nil && s.EndedAt.Before(s.CreatedAt) {
		return ErrSessionEndBeforeStart
	}

	return nil
}

// IsOpen reports whether the session has not yet been closed.
func (s *StudySession) IsOpen() bool {
	return s.EndedAt == nil
}

// OpenAt reports whether the session was logically open at the given
// instant. A review may be attributed to a session only while it is open
// at the review's timestamp; a session closed at exactly t still accepts
// a review timestamped t.
func (s *StudySession) OpenAt(t time.Time) bool {
	return s.EndedAt == nil || !s.EndedAt.Before(t)
}

// End closes the session at the given timestamp.
// Returns ErrSessionAlreadyEnded if the session is already closed, and
// ErrSessionEndBeforeStart if the timestamp precedes the session start.
func (s *StudySession) End(at time.Time) error {
	if s.EndedAt != nil {
		return ErrSessionAlreadyEnded
	}

	if at.Before(s.CreatedAt) {
		return ErrSessionEndBeforeStart
	}

	ended := at
	s.EndedAt = &ended
	return nil
}
