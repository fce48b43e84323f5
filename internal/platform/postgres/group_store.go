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

// PostgresGroupStore implements the store.GroupStore interface
// using a PostgreSQL database as the storage backend.
// Word membership lives in the words_groups join table; a word may
// belong to any number of groups.
type PostgresGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the GroupStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresGroupStore(db store.DBTX, logger *slog.Logger) *PostgresGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// Create implements store.GroupStore.Create
// Returns validation errors from the domain Group if data is invalid.
func (s *PostgresGroupStore) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during create",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO groups (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, group.ID, group.Name, group.CreatedAt, group.UpdatedAt)
	if err != nil {
		log.Error("failed to create group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return MapError(err)
	}

	log.Info("group created",
		slog.String("group_id", group.ID.String()),
		slog.String("name", group.Name))
	return nil
}

// GetByID implements store.GroupStore.GetByID
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	var group domain.Group
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrGroupNotFound
		}
		return nil, MapError(err)
	}

	return &group, nil
}

// List implements store.GroupStore.List
// It returns one page of groups with word counts plus the total number
// of pages. The listing is always read fresh from the database so
// pagination stays correct under concurrent group creation.
func (s *PostgresGroupStore) List(
	ctx context.Context,
	page store.Page,
	sort store.Sort,
) ([]*store.GroupListing, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := sort.Validate(store.GroupSortKeys); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups`).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT g.id, g.name, g.created_at, g.updated_at,
		       COUNT(wg.word_id) AS word_count
		FROM groups g
		LEFT JOIN words_groups wg ON wg.group_id = g.id
		GROUP BY g.id, g.name, g.created_at, g.updated_at
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`, orderClause(sort, "name"))

	rows, err := s.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	listings := make([]*store.GroupListing, 0, page.Size)
	for rows.Next() {
		var listing store.GroupListing
		if err := rows.Scan(
			&listing.Group.ID,
			&listing.Group.Name,
			&listing.Group.CreatedAt,
			&listing.Group.UpdatedAt,
			&listing.WordCount,
		); err != nil {
			return nil, 0, MapError(err)
		}
		listings = append(listings, &listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return listings, store.TotalPages(total, page.Size), nil
}

// AddWords implements store.GroupStore.AddWords
// The whole batch goes in as one multi-row INSERT, so an unknown word
// leaves no membership behind. Adding a word that is already a member is
// a no-op thanks to the join table's primary key and ON CONFLICT DO
// NOTHING; unknown group and word IDs surface through the foreign keys.
func (s *PostgresGroupStore) AddWords(
	ctx context.Context,
	groupID uuid.UUID,
	wordIDs []uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(wordIDs) == 0 {
		return nil
	}

	var query strings.Builder
	query.WriteString(`
		INSERT INTO words_groups (word_id, group_id)
		VALUES `)

	args := make([]interface{}, 0, len(wordIDs)+1)
	args = append(args, groupID)
	for i, wordID := range wordIDs {
		if i > 0 {
			query.WriteString(", ")
		}
		fmt.Fprintf(&query, "($%d, $1)", i+2)
		args = append(args, wordID)
	}
	query.WriteString(" ON CONFLICT (word_id, group_id) DO NOTHING")

	if _, err := s.db.ExecContext(ctx, query.String(), args...); err != nil {
		if IsForeignKeyViolation(err, "words_groups_word_id_fkey") {
			return store.ErrWordNotFound
		}
		if IsForeignKeyViolation(err, "words_groups_group_id_fkey") {
			return store.ErrGroupNotFound
		}
		log.Error("failed to add words to group",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()))
		return MapError(err)
	}

	log.Debug("group membership grown",
		slog.String("group_id", groupID.String()),
		slog.Int("words", len(wordIDs)))
	return nil
}

// WordIDs implements store.GroupStore.WordIDs
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) WordIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT word_id FROM words_groups WHERE group_id = $1`,
		groupID,
	)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}
