package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/cache"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/config"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/service/study"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/testutils"
)

const (
	testJWTSecret  = "test-jwt-secret-thatis32characterslong"
	testResetToken = "confirm-history-reset"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			LogLevel:       "error",
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		Cache: config.CacheConfig{TTLSeconds: 300, MaxEntries: 256},
		Auth:  config.AuthConfig{JWTSecret: testJWTSecret},
		Admin: config.AdminConfig{ResetConfirmToken: testResetToken},
	}

	db := testutils.NewMemDB()
	svc := study.NewStudyService(
		db.Words(),
		db.Groups(),
		db.Sessions(),
		db.Activities(),
		db.Reviews(),
		cache.NewLRUCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second, nil),
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Admin.ResetConfirmToken,
		slog.Default(),
	)

	return NewRouter(cfg, svc, slog.Default())
}

func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "test-client",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// doJSON performs an authenticated JSON request and decodes the response
// body into out when it is non-nil.
func doJSON(
	t *testing.T,
	router http.Handler,
	token, method, path string,
	body interface{},
	out interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestRouter_RequiresAuth(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, "", http.MethodGet, "/api/groups", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "not-a-jwt", http.MethodGet, "/api/groups", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Health stays open.
	rec = doJSON(t, router, "", http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_StudyFlow(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token := testToken(t)

	// Create a group.
	var group GroupResponse
	rec := doJSON(t, router, token, http.MethodPost, "/api/groups",
		map[string]string{"name": "JLPT N5"}, &group)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Import two words.
	var words []WordResponse
	rec = doJSON(t, router, token, http.MethodPost, "/api/words/import",
		map[string]interface{}{"words": []map[string]string{
			{"native_text": "水", "transliteration": "mizu", "gloss": "water"},
			{"native_text": "火", "transliteration": "hi", "gloss": "fire"},
		}}, &words)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, words, 2)

	// Put them in the group.
	rec = doJSON(t, router, token, http.MethodPost,
		fmt.Sprintf("/api/groups/%s/words", group.ID),
		map[string][]string{"word_ids": {words[0].ID, words[1].ID}}, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Open a session.
	var session SessionResponse
	rec = doJSON(t, router, token, http.MethodPost, "/api/study_sessions",
		map[string]string{"group_id": group.ID}, &session)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, session.Open)

	// Record a correct and a wrong review.
	correct := true
	wrong := false
	rec = doJSON(t, router, token, http.MethodPost,
		fmt.Sprintf("/api/study_sessions/%s/words/%s/review", session.ID, words[0].ID),
		map[string]*bool{"correct": &correct}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, router, token, http.MethodPost,
		fmt.Sprintf("/api/study_sessions/%s/words/%s/review", session.ID, words[1].ID),
		map[string]*bool{"correct": &wrong}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Word statistics reflect the write immediately.
	var wordStats WordStatsResponse
	rec = doJSON(t, router, token, http.MethodGet,
		fmt.Sprintf("/api/words/%s/stats", words[0].ID), nil, &wordStats)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, wordStats.StudyCount)
	assert.Equal(t, 1.0, wordStats.SuccessRate)

	// Close the session; a second close conflicts.
	rec = doJSON(t, router, token, http.MethodPost,
		fmt.Sprintf("/api/study_sessions/%s/close", session.ID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, token, http.MethodPost,
		fmt.Sprintf("/api/study_sessions/%s/close", session.ID), nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A review against the closed session conflicts too.
	rec = doJSON(t, router, token, http.MethodPost,
		fmt.Sprintf("/api/study_sessions/%s/words/%s/review", session.ID, words[0].ID),
		map[string]*bool{"correct": &correct}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The summary now carries a duration.
	var summary SessionSummaryResponse
	rec = doJSON(t, router, token, http.MethodGet,
		fmt.Sprintf("/api/study_sessions/%s/summary", session.ID), nil, &summary)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, summary.CorrectCount)
	assert.Equal(t, 1, summary.WrongCount)
	assert.Equal(t, 2, summary.WordsStudied)
	require.NotNil(t, summary.DurationSeconds)
}

func TestRouter_BadInput(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token := testToken(t)

	rec := doJSON(t, router, token, http.MethodGet,
		"/api/words/not-a-uuid/stats", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, token, http.MethodGet,
		"/api/groups?sort_by=bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, token, http.MethodGet,
		"/api/groups?page=0", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Review body must state correctness explicitly.
	session := "11111111-1111-1111-1111-111111111111"
	word := "22222222-2222-2222-2222-222222222222"
	rec = doJSON(t, router, token, http.MethodPost,
		fmt.Sprintf("/api/study_sessions/%s/words/%s/review", session, word),
		map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UnknownEntities(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token := testToken(t)

	missing := "33333333-3333-3333-3333-333333333333"

	rec := doJSON(t, router, token, http.MethodGet,
		fmt.Sprintf("/api/words/%s/stats", missing), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, token, http.MethodGet,
		fmt.Sprintf("/api/study_sessions/%s/summary", missing), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, token, http.MethodPost, "/api/study_sessions",
		map[string]string{"group_id": missing}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ResetHistory(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token := testToken(t)

	rec := doJSON(t, router, token, http.MethodPost, "/api/reset_history",
		map[string]string{"confirm_token": "wrong"}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, token, http.MethodPost, "/api/reset_history",
		map[string]string{"confirm_token": testResetToken}, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
