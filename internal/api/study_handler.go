// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/api/shared"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/service/study"
)

// StudyHandler handles study session and review HTTP requests.
type StudyHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService study.StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// CreateSessionRequest represents the request body for opening a session.
type CreateSessionRequest struct {
	GroupID string `json:"group_id"`
}

// RecordReviewRequest represents the request body for recording a review.
type RecordReviewRequest struct {
	Correct *bool `json:"correct"`
}

// CreateSession handles POST /study_sessions requests.
func (h *StudyHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group_id")
		return
	}

	session, err := h.studyService.CreateSession(r.Context(), groupID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("study session created",
		slog.String("session_id", session.ID.String()),
		slog.String("group_id", groupID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// RecordReview handles POST /study_sessions/{id}/words/{word_id}/review requests.
func (h *StudyHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, err := parseUUIDParam(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}
	wordID, err := parseUUIDParam(r, "word_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	var req RecordReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Correct == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Request body must set correct to true or false")
		return
	}

	review, err := h.studyService.RecordReview(r.Context(), sessionID, wordID, *req.Correct)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review recorded",
		slog.String("review_id", review.ID.String()),
		slog.String("session_id", sessionID.String()),
		slog.String("word_id", wordID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, reviewToResponse(review))
}

// CloseSession handles POST /study_sessions/{id}/close requests.
func (h *StudyHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, err := parseUUIDParam(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	session, err := h.studyService.CloseSession(r.Context(), sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("study session closed", slog.String("session_id", sessionID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// GetSessionSummary handles GET /study_sessions/{id}/summary requests.
func (h *StudyHandler) GetSessionSummary(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUIDParam(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	summary, err := h.studyService.GetSessionSummary(r.Context(), sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}

// ListRecentSessions handles GET /study_sessions requests. Accepts an
// optional limit and group_id query parameter.
func (h *StudyHandler) ListRecentSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	var groupID *uuid.UUID
	if raw := r.URL.Query().Get("group_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group_id")
			return
		}
		groupID = &id
	}

	sessions, err := h.studyService.GetRecentSessions(r.Context(), limit, groupID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	items := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, sessionToResponse(session))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// CreateActivity handles POST /study_sessions/{id}/activities requests.
func (h *StudyHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUIDParam(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	activity, err := h.studyService.CreateActivity(r.Context(), sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, activityToResponse(activity))
}
