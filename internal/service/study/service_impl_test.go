package study

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/cache"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/testutils"
)

const testResetToken = "yes-really-erase-everything"

// newTestService wires a StudyService over a fresh in-memory database
// and the given cache.
func newTestService(t *testing.T, c cache.Cache) (StudyService, *testutils.MemDB) {
	t.Helper()
	db := testutils.NewMemDB()
	svc := NewStudyService(
		db.Words(),
		db.Groups(),
		db.Sessions(),
		db.Activities(),
		db.Reviews(),
		c,
		5*time.Minute,
		testResetToken,
		nil,
	)
	return svc, db
}

// seedSession creates a group, two words in it, and an open session.
func seedSession(
	t *testing.T,
	svc StudyService,
) (*domain.Group, []*domain.Word, *domain.StudySession) {
	t.Helper()
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Core Verbs")
	require.NoError(t, err)

	words, err := svc.ImportWords(ctx, []WordInput{
		{NativeText: "食べる", Transliteration: "taberu", Gloss: "to eat"},
		{NativeText: "飲む", Transliteration: "nomu", Gloss: "to drink"},
	})
	require.NoError(t, err)
	require.Len(t, words, 2)

	wordIDs := []uuid.UUID{words[0].ID, words[1].ID}
	require.NoError(t, svc.AddWordsToGroup(ctx, group.ID, wordIDs))

	session, err := svc.CreateSession(ctx, group.ID)
	require.NoError(t, err)
	require.True(t, session.IsOpen())

	return group, words, session
}

func TestNewStudyService_PanicsOnNilDependencies(t *testing.T) {
	t.Parallel()
	db := testutils.NewMemDB()

	assert.Panics(t, func() {
		NewStudyService(nil, db.Groups(), db.Sessions(), db.Activities(), db.Reviews(),
			cache.NewNopCache(), time.Minute, testResetToken, nil)
	})
	assert.Panics(t, func() {
		NewStudyService(db.Words(), db.Groups(), db.Sessions(), db.Activities(), db.Reviews(),
			nil, time.Minute, testResetToken, nil)
	})
}

func TestRecordReview_ReadOwnWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewLRUCache(64, time.Minute, nil))
	group, words, session := seedSession(t, svc)

	// Populate the caches with the empty state first.
	empty, err := svc.GetWordStats(ctx, words[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.StudyCount)
	assert.Equal(t, 0.0, empty.SuccessRate)

	review, err := svc.RecordReview(ctx, session.ID, words[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, words[0].ID, review.WordID)

	// The write must be visible immediately despite the earlier cached read.
	wordStats, err := svc.GetWordStats(ctx, words[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, wordStats.StudyCount)
	assert.Equal(t, 1.0, wordStats.SuccessRate)

	groupStats, err := svc.GetGroupStats(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, groupStats.TotalReviews)

	summary, err := svc.GetSessionSummary(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CorrectCount)
	assert.Equal(t, 0, summary.WrongCount)
	assert.Equal(t, 1, summary.WordsStudied)
	assert.Nil(t, summary.DurationSeconds)
}

func TestRecordReview_ClosedSessionRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewNopCache())
	_, words, session := seedSession(t, svc)

	_, err := svc.CloseSession(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.RecordReview(ctx, session.ID, words[0].ID, true)
	assert.ErrorIs(t, err, store.ErrSessionClosed)
	assert.True(t, store.IsIntegrityError(err))

	// The rejected review must not appear in any statistic.
	summary, err := svc.GetSessionSummary(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.CorrectCount+summary.WrongCount)
}

func TestRecordReview_UnknownReferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewNopCache())
	_, words, session := seedSession(t, svc)

	_, err := svc.RecordReview(ctx, uuid.New(), words[0].ID, true)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	_, err = svc.RecordReview(ctx, session.ID, uuid.New(), true)
	assert.ErrorIs(t, err, store.ErrWordNotFound)
}

// TestStats_CacheAndNoCacheAgree runs the same scenario against the LRU
// cache and the nop cache and requires identical statistics, since the
// cache must never change observable behavior.
func TestStats_CacheAndNoCacheAgree(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	outcomes := []bool{true, false, true, true, false, true, true}

	run := func(c cache.Cache) (word aggregate, grp aggregate) {
		svc, _ := newTestService(t, c)
		group, words, session := seedSession(t, svc)

		for _, correct := range outcomes {
			_, err := svc.RecordReview(ctx, session.ID, words[0].ID, correct)
			require.NoError(t, err)
			// Interleave reads so the cached variant actually caches.
			_, err = svc.GetWordStats(ctx, words[0].ID)
			require.NoError(t, err)
		}

		ws, err := svc.GetWordStats(ctx, words[0].ID)
		require.NoError(t, err)
		gs, err := svc.GetGroupStats(ctx, group.ID)
		require.NoError(t, err)
		return aggregate{ws.SuccessRate, ws.StudyCount}, aggregate{gs.SuccessRate, gs.TotalReviews}
	}

	cachedWord, cachedGroup := run(cache.NewLRUCache(64, time.Minute, nil))
	plainWord, plainGroup := run(cache.NewNopCache())

	assert.Equal(t, plainWord, cachedWord)
	assert.Equal(t, plainGroup, cachedGroup)
	assert.Equal(t, 7, cachedWord.count)
	assert.InDelta(t, 5.0/7.0, cachedWord.rate, 1e-12)
}

type aggregate struct {
	rate  float64
	count int
}

func TestCloseSession_ConcurrentDoubleClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewLRUCache(64, time.Minute, nil))
	_, _, session := seedSession(t, svc)

	const closers = 8
	errs := make([]error, closers)
	var wg sync.WaitGroup
	for i := 0; i < closers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CloseSession(ctx, session.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, store.ErrAlreadyClosed)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one close must win")
}

func TestGetSessionSummary_DurationAfterClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewLRUCache(64, time.Minute, nil))
	_, words, session := seedSession(t, svc)

	_, err := svc.RecordReview(ctx, session.ID, words[0].ID, true)
	require.NoError(t, err)
	_, err = svc.RecordReview(ctx, session.ID, words[1].ID, false)
	require.NoError(t, err)

	open, err := svc.GetSessionSummary(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, open.DurationSeconds)
	assert.Equal(t, 2, open.WordsStudied)

	_, err = svc.CloseSession(ctx, session.ID)
	require.NoError(t, err)

	// The close must evict the open-session summary.
	closed, err := svc.GetSessionSummary(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.DurationSeconds)
	assert.GreaterOrEqual(t, *closed.DurationSeconds, 0.0)
	assert.Equal(t, 1, closed.CorrectCount)
	assert.Equal(t, 1, closed.WrongCount)
}

func TestGetGroupPage_Pagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewNopCache())

	for i := 1; i <= 25; i++ {
		_, err := svc.CreateGroup(ctx, fmt.Sprintf("group-%02d", i))
		require.NoError(t, err)
	}

	page2, totalPages, err := svc.GetGroupPage(ctx,
		store.Page{Number: 2, Size: 10},
		store.Sort{Key: "name", Dir: store.SortAsc})
	require.NoError(t, err)

	assert.Equal(t, 3, totalPages)
	require.Len(t, page2, 10)
	assert.Equal(t, "group-11", page2[0].Group.Name)
	assert.Equal(t, "group-20", page2[9].Group.Name)

	// A fresh group shows up on the very next read.
	_, err = svc.CreateGroup(ctx, "group-26")
	require.NoError(t, err)
	_, totalPages, err = svc.GetGroupPage(ctx,
		store.Page{Number: 1, Size: 10},
		store.Sort{Key: "name", Dir: store.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, 3, totalPages)

	_, _, err = svc.GetGroupPage(ctx,
		store.Page{Number: 1, Size: 10},
		store.Sort{Key: "nope", Dir: store.SortAsc})
	assert.ErrorIs(t, err, store.ErrInvalidSortKey)

	_, _, err = svc.GetGroupPage(ctx,
		store.Page{Number: 0, Size: 10},
		store.Sort{})
	assert.ErrorIs(t, err, store.ErrInvalidPage)
}

func TestGetRecentSessions_FilterAndOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewNopCache())

	groupA, err := svc.CreateGroup(ctx, "A")
	require.NoError(t, err)
	groupB, err := svc.CreateGroup(ctx, "B")
	require.NoError(t, err)

	var last *domain.StudySession
	for i := 0; i < 3; i++ {
		last, err = svc.CreateSession(ctx, groupA.ID)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err = svc.CreateSession(ctx, groupB.ID)
	require.NoError(t, err)

	recent, err := svc.GetRecentSessions(ctx, 2, &groupA.ID)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, last.ID, recent[0].ID)
	for _, session := range recent {
		assert.Equal(t, groupA.ID, session.GroupID)
	}

	_, err = svc.GetRecentSessions(ctx, 0, nil)
	assert.ErrorIs(t, err, store.ErrInvalidPage)
	_, err = svc.GetRecentSessions(ctx, -1, nil)
	assert.ErrorIs(t, err, store.ErrInvalidPage)
}

func TestCreateActivity_InheritsSessionGroup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewNopCache())
	group, _, session := seedSession(t, svc)

	activity, err := svc.CreateActivity(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, activity.StudySessionID)
	assert.Equal(t, group.ID, activity.GroupID)

	_, err = svc.CreateActivity(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestImportWords_AllOrNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, db := newTestService(t, cache.NewNopCache())

	_, err := svc.ImportWords(ctx, []WordInput{
		{NativeText: "良い", Transliteration: "yoi", Gloss: "good"},
		{NativeText: "", Transliteration: "broken", Gloss: "missing native text"},
	})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	// Nothing from the failed batch may be visible.
	words, _, err := db.Words().List(ctx, store.Page{Number: 1, Size: 10}, store.Sort{})
	require.NoError(t, err)
	assert.Empty(t, words)

	_, err = svc.ImportWords(ctx, nil)
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestResetAllHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, cache.NewLRUCache(64, time.Minute, nil))
	group, words, session := seedSession(t, svc)

	for i := 0; i < 4; i++ {
		_, err := svc.RecordReview(ctx, session.ID, words[i%2].ID, i%2 == 0)
		require.NoError(t, err)
	}

	// Warm the caches so the reset has something to flush.
	warm, err := svc.GetWordStats(ctx, words[0].ID)
	require.NoError(t, err)
	require.Equal(t, 2, warm.StudyCount)

	err = svc.ResetAllHistory(ctx, "wrong-token")
	assert.ErrorIs(t, err, ErrResetNotConfirmed)
	err = svc.ResetAllHistory(ctx, "")
	assert.ErrorIs(t, err, ErrResetNotConfirmed)

	// The rejected reset must not have touched anything.
	kept, err := svc.GetWordStats(ctx, words[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, kept.StudyCount)

	require.NoError(t, svc.ResetAllHistory(ctx, testResetToken))

	// Every statistic reads as the zero state, entities survive.
	wordStats, err := svc.GetWordStats(ctx, words[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, wordStats.StudyCount)
	assert.Equal(t, 0.0, wordStats.SuccessRate)

	groupStats, err := svc.GetGroupStats(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, groupStats.TotalReviews)

	summary, err := svc.GetSessionSummary(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.CorrectCount+summary.WrongCount)
	assert.Equal(t, 0, summary.WordsStudied)
}
