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

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// CreateBatch implements store.WordStore.CreateBatch
// The whole batch is validated up front and then written with a single
// multi-row INSERT, so any failure, validation or database, leaves no
// row behind.
func (s *PostgresWordStore) CreateBatch(ctx context.Context, words []*domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(words) == 0 {
		return nil
	}

	for _, word := range words {
		if err := word.Validate(); err != nil {
			log.Warn("word validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("word_id", word.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	var query strings.Builder
	query.WriteString(`
		INSERT INTO words (id, native_text, transliteration, gloss, parts, created_at)
		VALUES `)

	args := make([]interface{}, 0, len(words)*6)
	for i, word := range words {
		var parts any
		if len(word.Parts) > 0 {
			parts = []byte(word.Parts)
		}
		if i > 0 {
			query.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args,
			word.ID,
			word.NativeText,
			word.Transliteration,
			word.Gloss,
			parts,
			word.CreatedAt,
		)
	}

	if _, err := s.db.ExecContext(ctx, query.String(), args...); err != nil {
		log.Error("failed to create word batch",
			slog.String("error", err.Error()),
			slog.Int("count", len(words)))
		return MapError(err)
	}

	log.Info("word batch created", slog.Int("count", len(words)))
	return nil
}

// GetByID implements store.WordStore.GetByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	query := `
		SELECT id, native_text, transliteration, gloss, parts, created_at
		FROM words
		WHERE id = $1
	`

	var word domain.Word
	var parts []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&word.ID,
		&word.NativeText,
		&word.Transliteration,
		&word.Gloss,
		&parts,
		&word.CreatedAt,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrWordNotFound
		}
		return nil, MapError(err)
	}
	if len(parts) > 0 {
		word.Parts = parts
	}

	return &word, nil
}

// List implements store.WordStore.List
// It returns one page of words plus the total number of pages.
func (s *PostgresWordStore) List(
	ctx context.Context,
	page store.Page,
	sort store.Sort,
) ([]*domain.Word, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := sort.Validate(store.WordSortKeys); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT id, native_text, transliteration, gloss, parts, created_at
		FROM words
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`, orderClause(sort, "native_text"))

	rows, err := s.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	words := make([]*domain.Word, 0, page.Size)
	for rows.Next() {
		var word domain.Word
		var parts []byte
		if err := rows.Scan(
			&word.ID,
			&word.NativeText,
			&word.Transliteration,
			&word.Gloss,
			&parts,
			&word.CreatedAt,
		); err != nil {
			return nil, 0, MapError(err)
		}
		if len(parts) > 0 {
			word.Parts = parts
		}
		words = append(words, &word)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return words, store.TotalPages(total, page.Size), nil
}

// orderClause builds a safe ORDER BY clause from a validated sort. The
// sort key has already been checked against the allowed list, so it can
// be interpolated directly.
func orderClause(sort store.Sort, defaultKey string) string {
	key := sort.Key
	if key == "" {
		key = defaultKey
	}
	dir := "ASC"
	if sort.Dir == store.SortDesc {
		dir = "DESC"
	}
	return key + " " + dir
}
