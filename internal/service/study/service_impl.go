package study

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/cache"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain/stats"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// Verify interface compliance at compile time
var _ StudyService = (*studyServiceImpl)(nil)

// studyServiceImpl implements the StudyService interface.
type studyServiceImpl struct {
	words      store.WordStore
	groups     store.GroupStore
	sessions   store.SessionStore
	activities store.ActivityStore
	reviews    store.ReviewStore
	cache      cache.Cache
	cacheTTL   time.Duration
	resetToken string
	logger     *slog.Logger
}

// NewStudyService creates a new StudyService implementation.
func NewStudyService(
	words store.WordStore,
	groups store.GroupStore,
	sessions store.SessionStore,
	activities store.ActivityStore,
	reviews store.ReviewStore,
	statsCache cache.Cache,
	cacheTTL time.Duration,
	resetToken string,
	logger *slog.Logger,
) StudyService {
	// Validate inputs
	if words == nil {
		panic("words store cannot be nil")
	}
	if groups == nil {
		panic("groups store cannot be nil")
	}
	if sessions == nil {
		panic("sessions store cannot be nil")
	}
	if activities == nil {
		panic("activities store cannot be nil")
	}
	if reviews == nil {
		panic("reviews store cannot be nil")
	}
	if statsCache == nil {
		panic("statsCache cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &studyServiceImpl{
		words:      words,
		groups:     groups,
		sessions:   sessions,
		activities: activities,
		reviews:    reviews,
		cache:      statsCache,
		cacheTTL:   cacheTTL,
		resetToken: resetToken,
		logger:     logger.With(slog.String("component", "study_service")),
	}
}

// RecordReview implements StudyService.RecordReview.
// It appends one review event to the ledger and invalidates the derived
// statistics the event affects.
func (s *studyServiceImpl) RecordReview(
	ctx context.Context,
	sessionID uuid.UUID,
	wordID uuid.UUID,
	correct bool,
) (*domain.WordReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("recording review",
		slog.String("session_id", sessionID.String()),
		slog.String("word_id", wordID.String()),
		slog.Bool("correct", correct))

	review, err := domain.NewWordReviewItem(wordID, sessionID, correct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	// Attribution check against the session as currently visible. The
	// store re-checks atomically on append, so a close that lands between
	// this read and the insert still cannot produce an orphaned event.
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		log.Debug("session lookup failed for review",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, err
	}
	if !session.OpenAt(review.CreatedAt) {
		log.Warn("review rejected: session closed",
			slog.String("session_id", sessionID.String()),
			slog.String("word_id", wordID.String()))
		return nil, store.ErrSessionClosed
	}

	if err := s.reviews.Append(ctx, review); err != nil {
		if store.IsIntegrityError(err) || store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to append review",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()),
			slog.String("word_id", wordID.String()))
		return nil, NewRecordReviewError("failed to append review", err)
	}

	// The event is durable; drop every statistic it affects so the next
	// read recomputes. Best effort, errors cannot occur by contract.
	s.cache.Invalidate(ctx, cache.KindWord, wordID)
	s.cache.Invalidate(ctx, cache.KindSession, sessionID)
	s.cache.Invalidate(ctx, cache.KindGroup, session.GroupID)

	log.Debug("review recorded",
		slog.String("review_id", review.ID.String()),
		slog.String("session_id", sessionID.String()),
		slog.String("word_id", wordID.String()))
	return review, nil
}

// GetWordStats implements StudyService.GetWordStats.
func (s *studyServiceImpl) GetWordStats(
	ctx context.Context,
	wordID uuid.UUID,
) (*stats.WordStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	key := cache.Key{Kind: cache.KindWord, ID: wordID, Stat: cache.StatWordStats}
	var cached stats.WordStats
	if cacheGet(ctx, s.cache, key, &cached) {
		log.Debug("word stats served from cache", slog.String("word_id", wordID.String()))
		return &cached, nil
	}

	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		return nil, err
	}

	items, err := s.reviews.ListByWord(ctx, wordID)
	if err != nil {
		log.Error("failed to list reviews for word",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return nil, err
	}

	result := stats.ComputeWordStats(items)
	cacheSet(ctx, s.cache, key, result, s.cacheTTL)
	return &result, nil
}

// GetGroupStats implements StudyService.GetGroupStats.
func (s *studyServiceImpl) GetGroupStats(
	ctx context.Context,
	groupID uuid.UUID,
) (*stats.GroupStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	key := cache.Key{Kind: cache.KindGroup, ID: groupID, Stat: cache.StatGroupStats}
	var cached stats.GroupStats
	if cacheGet(ctx, s.cache, key, &cached) {
		log.Debug("group stats served from cache", slog.String("group_id", groupID.String()))
		return &cached, nil
	}

	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	items, err := s.reviews.ListByGroup(ctx, groupID)
	if err != nil {
		log.Error("failed to list reviews for group",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()))
		return nil, err
	}

	result := stats.ComputeGroupStats(items)
	cacheSet(ctx, s.cache, key, result, s.cacheTTL)
	return &result, nil
}

// GetGroupPage implements StudyService.GetGroupPage. Group listings are
// never cached: a freshly created group must appear on the next page
// read.
func (s *studyServiceImpl) GetGroupPage(
	ctx context.Context,
	page store.Page,
	sort store.Sort,
) ([]*store.GroupListing, int, error) {
	return s.groups.List(ctx, page, sort)
}

// GetWordPage implements StudyService.GetWordPage.
func (s *studyServiceImpl) GetWordPage(
	ctx context.Context,
	page store.Page,
	sort store.Sort,
) ([]*domain.Word, int, error) {
	return s.words.List(ctx, page, sort)
}

// GetRecentSessions implements StudyService.GetRecentSessions.
func (s *studyServiceImpl) GetRecentSessions(
	ctx context.Context,
	limit int,
	groupID *uuid.UUID,
) ([]*domain.StudySession, error) {
	return s.sessions.ListRecent(ctx, limit, groupID)
}

// GetSessionSummary implements StudyService.GetSessionSummary.
func (s *studyServiceImpl) GetSessionSummary(
	ctx context.Context,
	sessionID uuid.UUID,
) (*stats.SessionSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	key := cache.Key{Kind: cache.KindSession, ID: sessionID, Stat: cache.StatSummary}
	var cached stats.SessionSummary
	if cacheGet(ctx, s.cache, key, &cached) {
		log.Debug("session summary served from cache",
			slog.String("session_id", sessionID.String()))
		return &cached, nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.reviews.ListBySession(ctx, sessionID)
	if err != nil {
		log.Error("failed to list reviews for session",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, err
	}

	result := stats.ComputeSessionSummary(session, items)
	cacheSet(ctx, s.cache, key, result, s.cacheTTL)
	return &result, nil
}

// CloseSession implements StudyService.CloseSession.
// The close is a compare-and-set in the store, so concurrent closers
// race safely even across processes.
func (s *studyServiceImpl) CloseSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("closing session", slog.String("session_id", sessionID.String()))

	if err := s.sessions.Close(ctx, sessionID, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrAlreadyClosed) || store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to close session",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, NewCloseSessionError("failed to close session", err)
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// The summary gains a duration once closed; drop the open-session
	// value so the next read recomputes.
	s.cache.Invalidate(ctx, cache.KindSession, sessionID)
	s.cache.Invalidate(ctx, cache.KindGroup, session.GroupID)

	log.Debug("session closed",
		slog.String("session_id", sessionID.String()),
		slog.Time("ended_at", *session.EndedAt))
	return session, nil
}

// CreateGroup implements StudyService.CreateGroup.
func (s *studyServiceImpl) CreateGroup(
	ctx context.Context,
	name string,
) (*domain.Group, error) {
	group, err := domain.NewGroup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// CreateSession implements StudyService.CreateSession.
func (s *studyServiceImpl) CreateSession(
	ctx context.Context,
	groupID uuid.UUID,
) (*domain.StudySession, error) {
	session, err := domain.NewStudySession(groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CreateActivity implements StudyService.CreateActivity.
// The activity inherits its group from the owning session.
func (s *studyServiceImpl) CreateActivity(
	ctx context.Context,
	sessionID uuid.UUID,
) (*domain.StudyActivity, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	activity, err := domain.NewStudyActivity(session.ID, session.GroupID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// ImportWords implements StudyService.ImportWords.
// The whole batch is constructed and validated before any write, so a
// single malformed item rejects the import with nothing persisted.
func (s *studyServiceImpl) ImportWords(
	ctx context.Context,
	inputs []WordInput,
) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(inputs) == 0 {
		return nil, ErrNoWords
	}

	words := make([]*domain.Word, 0, len(inputs))
	for i, in := range inputs {
		var parts json.RawMessage
		if in.Parts != "" {
			parts = json.RawMessage(in.Parts)
		}
		word, err := domain.NewWord(in.NativeText, in.Transliteration, in.Gloss, parts)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", store.ErrInvalidEntity, i, err)
		}
		words = append(words, word)
	}

	if err := s.words.CreateBatch(ctx, words); err != nil {
		log.Error("failed to import words",
			slog.String("error", err.Error()),
			slog.Int("count", len(words)))
		return nil, err
	}

	log.Info("imported words", slog.Int("count", len(words)))
	return words, nil
}

// AddWordsToGroup implements StudyService.AddWordsToGroup.
// Group statistics depend on membership, so the group's cached
// aggregates are dropped after a successful add.
func (s *studyServiceImpl) AddWordsToGroup(
	ctx context.Context,
	groupID uuid.UUID,
	wordIDs []uuid.UUID,
) error {
	if err := s.groups.AddWords(ctx, groupID, wordIDs); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, cache.KindGroup, groupID)
	return nil
}

// ResetAllHistory implements StudyService.ResetAllHistory.
func (s *studyServiceImpl) ResetAllHistory(
	ctx context.Context,
	confirmToken string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if confirmToken == "" || confirmToken != s.resetToken {
		log.Warn("history reset rejected: missing or wrong confirmation token")
		return ErrResetNotConfirmed
	}

	if err := s.reviews.ResetAll(ctx); err != nil {
		log.Error("failed to reset review history", slog.String("error", err.Error()))
		return err
	}

	// Every cached statistic is now derived from deleted events.
	s.cache.Flush(ctx)

	log.Info("review history reset")
	return nil
}

// cacheGet reads a cached statistic into dst. A decode failure is
// treated as a miss; the cache is never authoritative.
func cacheGet(ctx context.Context, c cache.Cache, key cache.Key, dst any) bool {
	raw, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false
	}
	return true
}

// cacheSet stores a computed statistic. An encode failure just skips
// the write; the next read recomputes.
func cacheSet(ctx context.Context, c cache.Cache, key cache.Key, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw, ttl)
}
