package testutils

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// MemDB is the shared in-memory state behind the per-entity stores.
// A single mutex guards everything; the contention model does not matter
// in tests, only the observable semantics do.
type MemDB struct {
	mu         sync.Mutex
	words      map[uuid.UUID]*domain.Word
	groups     map[uuid.UUID]*domain.Group
	membership map[uuid.UUID]map[uuid.UUID]struct{} // groupID -> wordIDs
	sessions   map[uuid.UUID]*domain.StudySession
	activities []*domain.StudyActivity
	reviews    []domain.WordReviewItem
}

// NewMemDB creates an empty in-memory database.
func NewMemDB() *MemDB {
	return &MemDB{
		words:      make(map[uuid.UUID]*domain.Word),
		groups:     make(map[uuid.UUID]*domain.Group),
		membership: make(map[uuid.UUID]map[uuid.UUID]struct{}),
		sessions:   make(map[uuid.UUID]*domain.StudySession),
	}
}

// Words returns a WordStore backed by the database.
func (db *MemDB) Words() store.WordStore { return &memWordStore{db: db} }

// Groups returns a GroupStore backed by the database.
func (db *MemDB) Groups() store.GroupStore { return &memGroupStore{db: db} }

// Sessions returns a SessionStore backed by the database.
func (db *MemDB) Sessions() store.SessionStore { return &memSessionStore{db: db} }

// Activities returns an ActivityStore backed by the database.
func (db *MemDB) Activities() store.ActivityStore { return &memActivityStore{db: db} }

// Reviews returns a ReviewStore backed by the database.
func (db *MemDB) Reviews() store.ReviewStore { return &memReviewStore{db: db} }

// Verify interface compliance at compile time
var (
	_ store.WordStore     = (*memWordStore)(nil)
	_ store.GroupStore    = (*memGroupStore)(nil)
	_ store.SessionStore  = (*memSessionStore)(nil)
	_ store.ActivityStore = (*memActivityStore)(nil)
	_ store.ReviewStore   = (*memReviewStore)(nil)
)

type memWordStore struct{ db *MemDB }

func (s *memWordStore) CreateBatch(ctx context.Context, words []*domain.Word) error {
	for _, word := range words {
		if err := word.Validate(); err != nil {
			return err
		}
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, word := range words {
		copied := *word
		s.db.words[word.ID] = &copied
	}
	return nil
}

func (s *memWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	word, ok := s.db.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	copied := *word
	return &copied, nil
}

func (s *memWordStore) List(
	ctx context.Context,
	page store.Page,
	sortBy store.Sort,
) ([]*domain.Word, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := sortBy.Validate(store.WordSortKeys); err != nil {
		return nil, 0, err
	}

	s.db.mu.Lock()
	all := make([]*domain.Word, 0, len(s.db.words))
	for _, word := range s.db.words {
		copied := *word
		all = append(all, &copied)
	}
	s.db.mu.Unlock()

	desc := sortBy.Dir == store.SortDesc
	sort.Slice(all, func(i, j int) bool {
		var less bool
		switch sortBy.Key {
		case "native_text":
			less = all[i].NativeText < all[j].NativeText
		default:
			less = all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})

	return pageOf(all, page), store.TotalPages(len(all), page.Size), nil
}

type memGroupStore struct{ db *MemDB }

func (s *memGroupStore) Create(ctx context.Context, group *domain.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	copied := *group
	s.db.groups[group.ID] = &copied
	if _, ok := s.db.membership[group.ID]; !ok {
		s.db.membership[group.ID] = make(map[uuid.UUID]struct{})
	}
	return nil
}

func (s *memGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	group, ok := s.db.groups[id]
	if !ok {
		return nil, store.ErrGroupNotFound
	}
	copied := *group
	return &copied, nil
}

func (s *memGroupStore) List(
	ctx context.Context,
	page store.Page,
	sortBy store.Sort,
) ([]*store.GroupListing, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := sortBy.Validate(store.GroupSortKeys); err != nil {
		return nil, 0, err
	}

	s.db.mu.Lock()
	all := make([]*store.GroupListing, 0, len(s.db.groups))
	for id, group := range s.db.groups {
		all = append(all, &store.GroupListing{
			Group:     *group,
			WordCount: len(s.db.membership[id]),
		})
	}
	s.db.mu.Unlock()

	desc := sortBy.Dir == store.SortDesc
	sort.Slice(all, func(i, j int) bool {
		var less bool
		switch sortBy.Key {
		case "name":
			less = all[i].Group.Name < all[j].Group.Name
		case "word_count":
			less = all[i].WordCount < all[j].WordCount
		default:
			less = all[i].Group.CreatedAt.Before(all[j].Group.CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})

	return pageOf(all, page), store.TotalPages(len(all), page.Size), nil
}

func (s *memGroupStore) AddWords(
	ctx context.Context,
	groupID uuid.UUID,
	wordIDs []uuid.UUID,
) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.groups[groupID]; !ok {
		return store.ErrGroupNotFound
	}
	for _, wordID := range wordIDs {
		if _, ok := s.db.words[wordID]; !ok {
			return store.ErrWordNotFound
		}
	}

	members := s.db.membership[groupID]
	if members == nil {
		members = make(map[uuid.UUID]struct{})
		s.db.membership[groupID] = members
	}
	for _, wordID := range wordIDs {
		members[wordID] = struct{}{}
	}
	return nil
}

func (s *memGroupStore) WordIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.groups[groupID]; !ok {
		return nil, store.ErrGroupNotFound
	}

	ids := make([]uuid.UUID, 0, len(s.db.membership[groupID]))
	for id := range s.db.membership[groupID] {
		ids = append(ids, id)
	}
	return ids, nil
}

type memSessionStore struct{ db *MemDB }

func (s *memSessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.groups[session.GroupID]; !ok {
		return store.ErrGroupNotFound
	}
	copied := *session
	s.db.sessions[session.ID] = &copied
	return nil
}

func (s *memSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	session, ok := s.db.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	copied := *session
	if session.EndedAt != nil {
		ended := *session.EndedAt
		copied.EndedAt = &ended
	}
	return &copied, nil
}

func (s *memSessionStore) List(
	ctx context.Context,
	page store.Page,
	sortBy store.Sort,
) ([]*domain.StudySession, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := sortBy.Validate(store.SessionSortKeys); err != nil {
		return nil, 0, err
	}

	all := s.snapshot(nil)

	desc := sortBy.Dir == store.SortDesc
	sort.Slice(all, func(i, j int) bool {
		less := all[i].CreatedAt.Before(all[j].CreatedAt)
		if desc {
			return !less
		}
		return less
	})

	return pageOf(all, page), store.TotalPages(len(all), page.Size), nil
}

func (s *memSessionStore) ListRecent(
	ctx context.Context,
	limit int,
	groupID *uuid.UUID,
) ([]*domain.StudySession, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d", store.ErrInvalidPage, limit)
	}

	all := s.snapshot(groupID)

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Close is the compare-and-set transition. The check and the write are
// under one lock, matching the conditional UPDATE of the SQL adapter.
func (s *memSessionStore) Close(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	session, ok := s.db.sessions[id]
	if !ok {
		return store.ErrSessionNotFound
	}
	if session.EndedAt != nil {
		return store.ErrAlreadyClosed
	}

	ended := endedAt
	session.EndedAt = &ended
	return nil
}

func (s *memSessionStore) snapshot(groupID *uuid.UUID) []*domain.StudySession {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	all := make([]*domain.StudySession, 0, len(s.db.sessions))
	for _, session := range s.db.sessions {
		if groupID != nil && session.GroupID != *groupID {
			continue
		}
		copied := *session
		if session.EndedAt != nil {
			ended := *session.EndedAt
			copied.EndedAt = &ended
		}
		all = append(all, &copied)
	}
	return all
}

type memActivityStore struct{ db *MemDB }

func (s *memActivityStore) Create(ctx context.Context, activity *domain.StudyActivity) error {
	if err := activity.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.sessions[activity.StudySessionID]; !ok {
		return store.ErrSessionNotFound
	}
	copied := *activity
	s.db.activities = append(s.db.activities, &copied)
	return nil
}

func (s *memActivityStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]*domain.StudyActivity, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var out []*domain.StudyActivity
	for _, activity := range s.db.activities {
		if activity.StudySessionID == sessionID {
			copied := *activity
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type memReviewStore struct{ db *MemDB }

// Append holds the lock across the session check and the write, so a
// concurrent close cannot slip between them. This mirrors the guarded
// INSERT of the SQL adapter.
func (s *memReviewStore) Append(ctx context.Context, review *domain.WordReviewItem) error {
	if err := review.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.words[review.WordID]; !ok {
		return store.ErrWordNotFound
	}
	session, ok := s.db.sessions[review.StudySessionID]
	if !ok {
		return store.ErrSessionNotFound
	}
	if !session.OpenAt(review.CreatedAt) {
		return store.ErrSessionClosed
	}

	s.db.reviews = append(s.db.reviews, *review)
	return nil
}

func (s *memReviewStore) List(
	ctx context.Context,
	filter store.ReviewFilter,
	page store.Page,
	sortBy store.Sort,
) ([]domain.WordReviewItem, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := sortBy.Validate(store.ReviewSortKeys); err != nil {
		return nil, 0, err
	}

	all := s.filtered(filter)
	if sortBy.Dir == store.SortDesc {
		sort.Slice(all, func(i, j int) bool {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
	}

	return pageOf(all, page), store.TotalPages(len(all), page.Size), nil
}

func (s *memReviewStore) ListByWord(
	ctx context.Context,
	wordID uuid.UUID,
) ([]domain.WordReviewItem, error) {
	return s.filtered(store.ReviewFilter{WordID: &wordID}), nil
}

func (s *memReviewStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]domain.WordReviewItem, error) {
	return s.filtered(store.ReviewFilter{SessionID: &sessionID}), nil
}

func (s *memReviewStore) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]domain.WordReviewItem, error) {
	return s.filtered(store.ReviewFilter{GroupID: &groupID}), nil
}

func (s *memReviewStore) ResetAll(ctx context.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.reviews = nil
	return nil
}

// filtered returns matching reviews ascending by creation timestamp,
// which is the append order.
func (s *memReviewStore) filtered(filter store.ReviewFilter) []domain.WordReviewItem {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var members map[uuid.UUID]struct{}
	if filter.GroupID != nil {
		members = s.db.membership[*filter.GroupID]
	}

	var out []domain.WordReviewItem
	for _, review := range s.db.reviews {
		if filter.WordID != nil && review.WordID != *filter.WordID {
			continue
		}
		if filter.SessionID != nil && review.StudySessionID != *filter.SessionID {
			continue
		}
		if filter.GroupID != nil {
			if _, ok := members[review.WordID]; !ok {
				continue
			}
		}
		out = append(out, review)
	}
	return out
}

// pageOf slices one page out of the full listing.
func pageOf[T any](all []T, page store.Page) []T {
	offset := page.Offset()
	if offset >= len(all) {
		return []T{}
	}
	end := offset + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
