package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/api/shared"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/service/study"
)

// GroupHandler handles word group HTTP requests.
type GroupHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(studyService study.StudyService, logger *slog.Logger) *GroupHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GroupHandler")
	}

	return &GroupHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "group_handler")),
	}
}

// CreateGroupRequest represents the request body for creating a group.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// AddWordsRequest represents the request body for growing group membership.
type AddWordsRequest struct {
	WordIDs []string `json:"word_ids"`
}

// CreateGroup handles POST /groups requests.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	group, err := h.studyService.CreateGroup(r.Context(), req.Name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("group created",
		slog.String("group_id", group.ID.String()),
		slog.String("name", group.Name))
	shared.RespondWithJSON(w, r, http.StatusCreated, GroupResponse{
		ID:        group.ID.String(),
		Name:      group.Name,
		CreatedAt: group.CreatedAt,
	})
}

// ListGroups handles GET /groups requests. Listings are read fresh on
// every request; a group created a moment ago is already visible.
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	sort := parseSort(r, "name")

	listings, totalPages, err := h.studyService.GetGroupPage(r.Context(), page, sort)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	items := make([]GroupResponse, 0, len(listings))
	for _, listing := range listings {
		items = append(items, groupListingToResponse(listing))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PageResponse{
		Items:      items,
		Page:       page.Number,
		TotalPages: totalPages,
	})
}

// GetGroupStats handles GET /groups/{id}/stats requests.
func (h *GroupHandler) GetGroupStats(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseUUIDParam(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID")
		return
	}

	groupStats, err := h.studyService.GetGroupStats(r.Context(), groupID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groupStatsToResponse(groupStats))
}

// AddWords handles POST /groups/{id}/words requests.
func (h *GroupHandler) AddWords(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseUUIDParam(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID")
		return
	}

	var req AddWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.WordIDs) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Request body must list word_ids")
		return
	}

	wordIDs := make([]uuid.UUID, 0, len(req.WordIDs))
	for _, raw := range req.WordIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID in word_ids")
			return
		}
		wordIDs = append(wordIDs, id)
	}

	if err := h.studyService.AddWordsToGroup(r.Context(), groupID, wordIDs); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
