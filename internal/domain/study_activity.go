package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudyActivity-specific validation errors
var (
	// ErrActivityIDEmpty is returned when an activity ID is empty or nil.
	ErrActivityIDEmpty = errors.New("study activity ID cannot be empty")

	// ErrActivitySessionIDEmpty is returned when an activity's session ID is empty or nil.
	ErrActivitySessionIDEmpty = errors.New("study activity session ID cannot be empty")

	// ErrActivityGroupIDEmpty is returned when an activity's group ID is empty or nil.
	ErrActivityGroupIDEmpty = errors.New("study activity group ID cannot be empty")
)

// StudyActivity represents one exercise instance launched inside a study
// session. Activities are immutable after creation.
type StudyActivity struct {
	ID             uuid.UUID `json:"id"`
	StudySessionID uuid.UUID `json:"study_session_id"`
	GroupID        uuid.UUID `json:"group_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewStudyActivity creates a new StudyActivity for the given session and group.
// It generates a new UUID for the activity ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewStudyActivity(sessionID, groupID uuid.UUID) (*StudyActivity, error) {
	activity := &StudyActivity{
		ID:             uuid.New(),
		StudySessionID: sessionID,
		GroupID:        groupID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// Validate checks if the StudyActivity has valid data.
// Returns an error if any field fails validation.
func (a *StudyActivity) Validate() error {
	if a.ID == uuid.Nil {
		return ErrActivityIDEmpty
	}

	if a.StudySessionID == uuid.Nil {
		return ErrActivitySessionIDEmpty
	}

	if a.GroupID == uuid.Nil {
		return ErrActivityGroupIDEmpty
	}

	return nil
}
