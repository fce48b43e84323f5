package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "generic not found", err: ErrNotFound, expected: true},
		{name: "word not found", err: ErrWordNotFound, expected: true},
		{name: "group not found", err: ErrGroupNotFound, expected: true},
		{name: "session not found", err: ErrSessionNotFound, expected: true},
		{name: "wrapped word not found", err: fmt.Errorf("lookup: %w", ErrWordNotFound), expected: true},
		{name: "integrity error", err: ErrIntegrity, expected: false},
		{name: "nil error", err: nil, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNotFoundError(tc.err); got != tc.expected {
				t.Errorf("IsNotFoundError(%v) = %v, expected %v", tc.err, got, tc.expected)
			}
		})
	}
}

func TestIsIntegrityError(t *testing.T) {
	t.Parallel() // Enable parallel execution
	if !IsIntegrityError(ErrSessionClosed) {
		t.Error("Expected ErrSessionClosed to be an integrity error")
	}
	if !IsIntegrityError(ErrAlreadyClosed) {
		t.Error("Expected ErrAlreadyClosed to be an integrity error")
	}
	if !IsIntegrityError(fmt.Errorf("append: %w", ErrAlreadyClosed)) {
		t.Error("Expected wrapped ErrAlreadyClosed to be an integrity error")
	}
	if IsIntegrityError(ErrNotFound) {
		t.Error("Expected ErrNotFound not to be an integrity error")
	}
}

func TestAlreadyClosedIsIntegrity(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Double-close is a specialization of the integrity violation, so a
	// caller matching the broader category still catches it.
	if !errors.Is(ErrAlreadyClosed, ErrIntegrity) {
		t.Error("Expected ErrAlreadyClosed to wrap ErrIntegrity")
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel() // Enable parallel execution
	inner := errors.New("connection refused")
	err := NewStoreError("study_session", "close", "conditional update failed", inner)

	if !errors.Is(err, inner) {
		t.Error("Expected StoreError to unwrap to the original error")
	}

	msg := err.Error()
	expected := "close operation on study_session failed: conditional update failed: connection refused"
	if msg != expected {
		t.Errorf("Expected %q, got %q", expected, msg)
	}

	noCause := NewStoreError("word", "list", "bad cursor", nil)
	if noCause.Error() != "list operation on word failed: bad cursor" {
		t.Errorf("Unexpected message: %q", noCause.Error())
	}
}
