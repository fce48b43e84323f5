package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/api/shared"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/service/study"
)

// AdminHandler handles destructive administrative HTTP requests.
type AdminHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(studyService study.StudyService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AdminHandler")
	}

	return &AdminHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "admin_handler")),
	}
}

// ResetHistoryRequest represents the request body for a history reset.
type ResetHistoryRequest struct {
	ConfirmToken string `json:"confirm_token"`
}

// ResetHistory handles POST /reset_history requests. The confirmation
// token must match the configured value exactly; a missing or wrong
// token leaves everything untouched.
func (h *AdminHandler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ResetHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.studyService.ResetAllHistory(r.Context(), req.ConfirmToken); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Warn("review history reset via API")
	w.WriteHeader(http.StatusNoContent)
}
