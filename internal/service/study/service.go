package study

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain/stats"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// WordInput carries one vocabulary item for import, before it becomes a
// domain Word.
type WordInput struct {
	NativeText      string `json:"native_text"`
	Transliteration string `json:"transliteration"`
	Gloss           string `json:"gloss"`
	Parts           string `json:"parts,omitempty"`
}

// StudyService orchestrates the study ledger: it records review events,
// manages session lifecycle, and serves derived statistics through the
// side-cache. It is the only layer that touches the cache; stores below
// it and handlers above it never do.
type StudyService interface {
	// RecordReview appends a review event for the given word inside the
	// given session. The session must be logically open at the review's
	// timestamp.
	//
	// Returns:
	//   - (*domain.WordReviewItem, nil): The durably appended event
	//   - (nil, store.ErrSessionNotFound): If the session does not exist
	//   - (nil, store.ErrWordNotFound): If the word does not exist
	//   - (nil, store.ErrSessionClosed): If the session closed before the review
	//
	// On success the cached statistics for the word, the session, and the
	// session's group are invalidated before returning, so a subsequent
	// read observes the new event.
	RecordReview(
		ctx context.Context,
		sessionID uuid.UUID,
		wordID uuid.UUID,
		correct bool,
	) (*domain.WordReviewItem, error)

	// GetWordStats returns the derived statistics for a single word,
	// computed over its full review history. Served cache-aside: a cache
	// hit skips the ledger read, a miss recomputes and repopulates.
	// Returns store.ErrWordNotFound if the word does not exist.
	GetWordStats(ctx context.Context, wordID uuid.UUID) (*stats.WordStats, error)

	// GetGroupStats returns the derived statistics for a group, computed
	// over every review of every word in the group. Served cache-aside.
	// Returns store.ErrGroupNotFound if the group does not exist.
	GetGroupStats(ctx context.Context, groupID uuid.UUID) (*stats.GroupStats, error)

	// GetGroupPage returns one page of groups with their word counts plus
	// the total number of pages. Listings are always read fresh from the
	// store, never cached.
	GetGroupPage(ctx context.Context, page store.Page, sort store.Sort) ([]*store.GroupListing, int, error)

	// GetWordPage returns one page of vocabulary words plus the total
	// number of pages. Always read fresh.
	GetWordPage(ctx context.Context, page store.Page, sort store.Sort) ([]*domain.Word, int, error)

	// GetRecentSessions returns up to limit sessions most-recent-first,
	// optionally filtered to one group. Always read fresh.
	GetRecentSessions(ctx context.Context, limit int, groupID *uuid.UUID) ([]*domain.StudySession, error)

	// GetSessionSummary returns the summary for one session. Served
	// cache-aside; an open session's summary has a nil duration.
	// Returns store.ErrSessionNotFound if the session does not exist.
	GetSessionSummary(ctx context.Context, sessionID uuid.UUID) (*stats.SessionSummary, error)

	// CloseSession transitions the session from open to closed. The
	// transition happens exactly once even under concurrent calls; the
	// loser receives store.ErrAlreadyClosed. Returns the closed session.
	CloseSession(ctx context.Context, sessionID uuid.UUID) (*domain.StudySession, error)

	// CreateGroup creates a new named word group.
	CreateGroup(ctx context.Context, name string) (*domain.Group, error)

	// CreateSession opens a new study session for the given group.
	// Returns store.ErrGroupNotFound if the group does not exist.
	CreateSession(ctx context.Context, groupID uuid.UUID) (*domain.StudySession, error)

	// CreateActivity records one exercise launch inside the given session.
	// Returns store.ErrSessionNotFound if the session does not exist.
	CreateActivity(ctx context.Context, sessionID uuid.UUID) (*domain.StudyActivity, error)

	// ImportWords loads a batch of vocabulary items. The whole batch is
	// validated before anything is written; a single malformed item
	// rejects the batch.
	ImportWords(ctx context.Context, inputs []WordInput) ([]*domain.Word, error)

	// AddWordsToGroup grows a group's membership. Adding a word already
	// in the group is a no-op.
	AddWordsToGroup(ctx context.Context, groupID uuid.UUID, wordIDs []uuid.UUID) error

	// ResetAllHistory erases the entire review ledger and flushes the
	// statistics cache. The confirmation token must match the configured
	// value exactly; otherwise ErrResetNotConfirmed is returned and
	// nothing is touched.
	ResetAllHistory(ctx context.Context, confirmToken string) error
}

// Common error types for StudyService
var (
	// ErrResetNotConfirmed indicates a history reset was requested without
	// the exact confirmation token.
	ErrResetNotConfirmed = errors.New("history reset not confirmed")

	// ErrNoWords indicates an import was requested with an empty batch.
	ErrNoWords = errors.New("no words to import")
)

// ServiceError wraps errors from the study service with additional context.
// Consumers differentiate error types with errors.As instead of string
// matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecordReviewError returns a new ServiceError for the record_review operation.
func NewRecordReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_review",
		Message:   message,
		Err:       err,
	}
}

// NewCloseSessionError returns a new ServiceError for the close_session operation.
func NewCloseSessionError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "close_session",
		Message:   message,
		Err:       err,
	}
}
