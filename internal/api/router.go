package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/api/middleware"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/config"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/service/study"
)

// NewRouter builds the full HTTP routing tree. Every route under /api
// requires a bearer token and is rate limited per client.
func NewRouter(
	cfg *config.Config,
	studyService study.StudyService,
	logger *slog.Logger,
) http.Handler {
	wordHandler := NewWordHandler(studyService, logger)
	groupHandler := NewGroupHandler(studyService, logger)
	studyHandler := NewStudyHandler(studyService, logger)
	adminHandler := NewAdminHandler(studyService, logger)

	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret)
	rateLimiter := middleware.NewRateLimiter(
		cfg.Server.RateLimitRPS,
		cfg.Server.RateLimitBurst,
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(rateLimiter.Limit)

		r.Route("/words", func(r chi.Router) {
			r.Get("/", wordHandler.ListWords)
			r.Post("/import", wordHandler.ImportWords)
			r.Get("/{id}/stats", wordHandler.GetWordStats)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.ListGroups)
			r.Post("/", groupHandler.CreateGroup)
			r.Get("/{id}/stats", groupHandler.GetGroupStats)
			r.Post("/{id}/words", groupHandler.AddWords)
		})

		r.Route("/study_sessions", func(r chi.Router) {
			r.Get("/", studyHandler.ListRecentSessions)
			r.Post("/", studyHandler.CreateSession)
			r.Get("/{id}/summary", studyHandler.GetSessionSummary)
			r.Post("/{id}/close", studyHandler.CloseSession)
			r.Post("/{id}/activities", studyHandler.CreateActivity)
			r.Post("/{id}/words/{word_id}/review", studyHandler.RecordReview)
		})

		r.Post("/reset_history", adminHandler.ResetHistory)
	})

	return r
}
