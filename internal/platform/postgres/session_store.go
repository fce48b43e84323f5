package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
// Returns store.ErrGroupNotFound if the owning group does not exist.
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_sessions (id, group_id, created_at, ended_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.GroupID,
		session.CreatedAt,
		session.EndedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err, "study_sessions_group_id_fkey") {
			log.Warn("unknown group during session creation",
				slog.String("session_id", session.ID.String()),
				slog.String("group_id", session.GroupID.String()))
			return store.ErrGroupNotFound
		}
		log.Error("failed to create study session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}

	log.Info("study session created",
		slog.String("session_id", session.ID.String()),
		slog.String("group_id", session.GroupID.String()))
	return nil
}

// GetByID implements store.SessionStore.GetByID
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `
		SELECT id, group_id, created_at, ended_at
		FROM study_sessions
		WHERE id = $1
	`

	var session domain.StudySession
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.GroupID,
		&session.CreatedAt,
		&session.EndedAt,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrSessionNotFound
		}
		return nil, MapError(err)
	}

	return &session, nil
}

// List implements store.SessionStore.List
func (s *PostgresSessionStore) List(
	ctx context.Context,
	page store.Page,
	sort store.Sort,
) ([]*domain.StudySession, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := sort.Validate(store.SessionSortKeys); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sessions`).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT id, group_id, created_at, ended_at
		FROM study_sessions
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`, orderClause(sort, "created_at"))

	rows, err := s.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]*domain.StudySession, 0, page.Size)
	for rows.Next() {
		var session domain.StudySession
		if err := rows.Scan(
			&session.ID,
			&session.GroupID,
			&session.CreatedAt,
			&session.EndedAt,
		); err != nil {
			return nil, 0, MapError(err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return sessions, store.TotalPages(total, page.Size), nil
}

// ListRecent implements store.SessionStore.ListRecent
// Sessions come back most-recent-first by creation timestamp.
func (s *PostgresSessionStore) ListRecent(
	ctx context.Context,
	limit int,
	groupID *uuid.UUID,
) ([]*domain.StudySession, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d", store.ErrInvalidPage, limit)
	}

	query := `
		SELECT id, group_id, created_at, ended_at
		FROM study_sessions
		WHERE $1::uuid IS NULL OR group_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, groupID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]*domain.StudySession, 0, limit)
	for rows.Next() {
		var session domain.StudySession
		if err := rows.Scan(
			&session.ID,
			&session.GroupID,
			&session.CreatedAt,
			&session.EndedAt,
		); err != nil {
			return nil, MapError(err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return sessions, nil
}

// Close implements store.SessionStore.Close
// The conditional update on ended_at being null is the compare-and-set
// that makes concurrent closes race safely across processes: exactly one
// caller flips the row, every other caller sees zero rows affected and
// gets ErrAlreadyClosed.
func (s *PostgresSessionStore) Close(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE study_sessions
		SET ended_at = $2
		WHERE id = $1 AND ended_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, id, endedAt)
	if err != nil {
		log.Error("failed to close study session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected > 0 {
		log.Info("study session closed",
			slog.String("session_id", id.String()),
			slog.Time("ended_at", endedAt))
		return nil
	}

	// The CAS missed: either the session never existed or it lost the
	// race to another close.
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	log.Warn("double close of study session",
		slog.String("session_id", id.String()))
	return store.ErrAlreadyClosed
}
