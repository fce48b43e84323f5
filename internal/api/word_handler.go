package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/api/shared"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/service/study"
)

// WordHandler handles vocabulary word HTTP requests.
type WordHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(studyService study.StudyService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WordHandler")
	}

	return &WordHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "word_handler")),
	}
}

// ImportWordsRequest represents the request body for a vocabulary import.
type ImportWordsRequest struct {
	Words []study.WordInput `json:"words"`
}

// ImportWords handles POST /words/import requests. The batch is
// all-or-nothing: one malformed item rejects the whole import.
func (h *WordHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ImportWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	words, err := h.studyService.ImportWords(r.Context(), req.Words)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	items := make([]WordResponse, 0, len(words))
	for _, word := range words {
		items = append(items, wordToResponse(word))
	}

	log.Info("vocabulary imported", slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusCreated, items)
}

// ListWords handles GET /words requests.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	sort := parseSort(r, "created_at")

	words, totalPages, err := h.studyService.GetWordPage(r.Context(), page, sort)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	items := make([]WordResponse, 0, len(words))
	for _, word := range words {
		items = append(items, wordToResponse(word))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PageResponse{
		Items:      items,
		Page:       page.Number,
		TotalPages: totalPages,
	})
}

// GetWordStats handles GET /words/{id}/stats requests.
func (h *WordHandler) GetWordStats(w http.ResponseWriter, r *http.Request) {
	wordID, err := parseUUIDParam(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	wordStats, err := h.studyService.GetWordStats(r.Context(), wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordStatsToResponse(wordStats))
}
