package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// PostgresActivityStore implements the store.ActivityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityStore creates a new PostgreSQL implementation of the ActivityStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresActivityStore(db store.DBTX, logger *slog.Logger) *PostgresActivityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_store")),
	}
}

// Ensure PostgresActivityStore implements store.ActivityStore interface
var _ store.ActivityStore = (*PostgresActivityStore)(nil)

// Create implements store.ActivityStore.Create
// Returns store.ErrSessionNotFound if the owning session does not exist.
func (s *PostgresActivityStore) Create(ctx context.Context, activity *domain.StudyActivity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := activity.Validate(); err != nil {
		log.Warn("activity validation failed during create",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_activities (id, study_session_id, group_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		activity.ID,
		activity.StudySessionID,
		activity.GroupID,
		activity.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err, "study_activities_study_session_id_fkey") {
			return store.ErrSessionNotFound
		}
		if IsForeignKeyViolation(err, "study_activities_group_id_fkey") {
			return store.ErrGroupNotFound
		}
		log.Error("failed to create study activity",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return MapError(err)
	}

	log.Debug("study activity created",
		slog.String("activity_id", activity.ID.String()),
		slog.String("session_id", activity.StudySessionID.String()))
	return nil
}

// ListBySession implements store.ActivityStore.ListBySession
func (s *PostgresActivityStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]*domain.StudyActivity, error) {
	query := `
		SELECT id, study_session_id, group_id, created_at
		FROM study_activities
		WHERE study_session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var activities []*domain.StudyActivity
	for rows.Next() {
		var activity domain.StudyActivity
		if err := rows.Scan(
			&activity.ID,
			&activity.StudySessionID,
			&activity.GroupID,
			&activity.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		activities = append(activities, &activity)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return activities, nil
}
