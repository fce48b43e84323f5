package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Group-specific validation errors
var (
	// ErrGroupIDEmpty is returned when a group ID is empty or nil.
	ErrGroupIDEmpty = errors.New("group ID cannot be empty")

	// ErrGroupNameEmpty is returned when a group's display name is empty.
	ErrGroupNameEmpty = errors.New("group name cannot be empty")
)

// Group represents a named collection of words.
// Membership is a many-to-many relation: a word may belong to multiple
// groups. Membership can grow over time, but the group's identity
// (its ID and name) is immutable after creation.
type Group struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGroup creates a new Group with the given display name.
// It generates a new UUID for the group ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewGroup(name string) (*Group, error) {
	group := &Group{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the Group has valid data.
// Returns an error if any field fails validation.
func (g *Group) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGroupIDEmpty
	}

	if g.Name == "" {
		return ErrGroupNameEmpty
	}

	return nil
}
