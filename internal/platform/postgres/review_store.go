package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend. The ledger table
// is append-only: rows are inserted, never updated or deleted, except by
// the administrative ResetAll.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// Append implements store.ReviewStore.Append
// The insert enforces the session-lifecycle invariant in the same
// statement as the append: the row is only written if the session is
// still logically open at the review's timestamp. This keeps the check
// and the append atomic under concurrent closes without locks.
func (s *PostgresReviewStore) Append(ctx context.Context, review *domain.WordReviewItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during append",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO word_review_items (id, word_id, study_session_id, correct, created_at)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (
			SELECT 1 FROM study_sessions
			WHERE id = $3 AND (ended_at IS NULL OR ended_at >= $5)
		)
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.WordID,
		review.StudySessionID,
		review.Correct,
		review.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err, "word_review_items_word_id_fkey") {
			log.Warn("unknown word during review append",
				slog.String("word_id", review.WordID.String()))
			return store.ErrWordNotFound
		}
		log.Error("failed to append review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected > 0 {
		log.Debug("review appended",
			slog.String("review_id", review.ID.String()),
			slog.String("session_id", review.StudySessionID.String()),
			slog.Bool("correct", review.Correct))
		return nil
	}

	// The guarded insert wrote nothing: the session is unknown or it
	// closed before the review's timestamp.
	var endedAtNull bool
	err = s.db.QueryRowContext(
		ctx,
		`SELECT ended_at IS NULL FROM study_sessions WHERE id = $1`,
		review.StudySessionID,
	).Scan(&endedAtNull)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return store.ErrSessionNotFound
		}
		return MapError(err)
	}

	log.Warn("review rejected: session closed before review",
		slog.String("review_id", review.ID.String()),
		slog.String("session_id", review.StudySessionID.String()))
	return store.ErrSessionClosed
}

// List implements store.ReviewStore.List
func (s *PostgresReviewStore) List(
	ctx context.Context,
	filter store.ReviewFilter,
	page store.Page,
	sort store.Sort,
) ([]domain.WordReviewItem, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := sort.Validate(store.ReviewSortKeys); err != nil {
		return nil, 0, err
	}

	where, args := reviewFilterClause(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM word_review_items r` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.word_id, r.study_session_id, r.correct, r.created_at
		FROM word_review_items r%s
		ORDER BY r.%s
		LIMIT $%d OFFSET $%d
	`, where, orderClause(sort, "created_at"), len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	items, err := s.queryReviews(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return items, store.TotalPages(total, page.Size), nil
}

// ListByWord implements store.ReviewStore.ListByWord
// Items come back ascending by creation timestamp, the order the
// aggregate calculator expects.
func (s *PostgresReviewStore) ListByWord(
	ctx context.Context,
	wordID uuid.UUID,
) ([]domain.WordReviewItem, error) {
	return s.queryReviews(ctx, `
		SELECT id, word_id, study_session_id, correct, created_at
		FROM word_review_items
		WHERE word_id = $1
		ORDER BY created_at ASC
	`, wordID)
}

// ListBySession implements store.ReviewStore.ListBySession
func (s *PostgresReviewStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]domain.WordReviewItem, error) {
	return s.queryReviews(ctx, `
		SELECT id, word_id, study_session_id, correct, created_at
		FROM word_review_items
		WHERE study_session_id = $1
		ORDER BY created_at ASC
	`, sessionID)
}

// ListByGroup implements store.ReviewStore.ListByGroup
// The group's success rate is always recomputed over exactly this set:
// every review of every word currently in the group.
func (s *PostgresReviewStore) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]domain.WordReviewItem, error) {
	return s.queryReviews(ctx, `
		SELECT r.id, r.word_id, r.study_session_id, r.correct, r.created_at
		FROM word_review_items r
		JOIN words_groups wg ON wg.word_id = r.word_id
		WHERE wg.group_id = $1
		ORDER BY r.created_at ASC
	`, groupID)
}

// ResetAll implements store.ReviewStore.ResetAll
// Truncation is the one destructive operation on the ledger; it is only
// reachable through the confirmed administrative reset.
func (s *PostgresReviewStore) ResetAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `TRUNCATE word_review_items`); err != nil {
		log.Error("failed to reset review ledger", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("review ledger reset")
	return nil
}

// queryReviews runs a review query and scans the rows.
func (s *PostgresReviewStore) queryReviews(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.WordReviewItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var items []domain.WordReviewItem
	for rows.Next() {
		var item domain.WordReviewItem
		if err := rows.Scan(
			&item.ID,
			&item.WordID,
			&item.StudySessionID,
			&item.Correct,
			&item.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// reviewFilterClause builds the WHERE clause and arguments for a filter.
// Set fields are combined with AND.
func reviewFilterClause(filter store.ReviewFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.WordID != nil {
		args = append(args, *filter.WordID)
		conds = append(conds, fmt.Sprintf("r.word_id = $%d", len(args)))
	}
	if filter.SessionID != nil {
		args = append(args, *filter.SessionID)
		conds = append(conds, fmt.Sprintf("r.study_session_id = $%d", len(args)))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conds = append(conds, fmt.Sprintf(
			"r.word_id IN (SELECT word_id FROM words_groups WHERE group_id = $%d)",
			len(args),
		))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
