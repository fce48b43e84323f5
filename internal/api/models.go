package api

import (
	"encoding/json"
	"math"
	"time"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain/stats"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// WordResponse represents the response data for a vocabulary word.
type WordResponse struct {
	ID              string          `json:"id"`
	NativeText      string          `json:"native_text"`
	Transliteration string          `json:"transliteration,omitempty"`
	Gloss           string          `json:"gloss"`
	Parts           json.RawMessage `json:"parts,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// GroupResponse represents the response data for a word group.
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse represents the response data for a study session.
type SessionResponse struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"group_id"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Open      bool       `json:"open"`
}

// ActivityResponse represents the response data for a study activity.
type ActivityResponse struct {
	ID             string    `json:"id"`
	StudySessionID string    `json:"study_session_id"`
	GroupID        string    `json:"group_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReviewResponse represents the response data for one recorded review.
type ReviewResponse struct {
	ID             string    `json:"id"`
	WordID         string    `json:"word_id"`
	StudySessionID string    `json:"study_session_id"`
	Correct        bool      `json:"correct"`
	CreatedAt      time.Time `json:"created_at"`
}

// WordStatsResponse represents the derived statistics for one word.
type WordStatsResponse struct {
	SuccessRate float64 `json:"success_rate"`
	StudyCount  int     `json:"study_count"`
}

// GroupStatsResponse represents the derived statistics for one group.
type GroupStatsResponse struct {
	SuccessRate  float64 `json:"success_rate"`
	TotalReviews int     `json:"total_reviews"`
}

// SessionSummaryResponse represents the summary of one study session.
type SessionSummaryResponse struct {
	CorrectCount    int      `json:"correct_count"`
	WrongCount      int      `json:"wrong_count"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	WordsStudied    int      `json:"words_studied"`
}

// PageResponse wraps a listing page with its pagination envelope.
type PageResponse struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
}

// roundRate rounds a success rate for presentation. Rates stay unrounded
// everywhere below this layer.
func roundRate(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func wordToResponse(word *domain.Word) WordResponse {
	return WordResponse{
		ID:              word.ID.String(),
		NativeText:      word.NativeText,
		Transliteration: word.Transliteration,
		Gloss:           word.Gloss,
		Parts:           word.Parts,
		CreatedAt:       word.CreatedAt,
	}
}

func groupListingToResponse(listing *store.GroupListing) GroupResponse {
	return GroupResponse{
		ID:        listing.Group.ID.String(),
		Name:      listing.Group.Name,
		WordCount: listing.WordCount,
		CreatedAt: listing.Group.CreatedAt,
	}
}

func sessionToResponse(session *domain.StudySession) SessionResponse {
	return SessionResponse{
		ID:        session.ID.String(),
		GroupID:   session.GroupID.String(),
		CreatedAt: session.CreatedAt,
		EndedAt:   session.EndedAt,
		Open:      session.IsOpen(),
	}
}

func activityToResponse(activity *domain.StudyActivity) ActivityResponse {
	return ActivityResponse{
		ID:             activity.ID.String(),
		StudySessionID: activity.StudySessionID.String(),
		GroupID:        activity.GroupID.String(),
		CreatedAt:      activity.CreatedAt,
	}
}

func reviewToResponse(review *domain.WordReviewItem) ReviewResponse {
	return ReviewResponse{
		ID:             review.ID.String(),
		WordID:         review.WordID.String(),
		StudySessionID: review.StudySessionID.String(),
		Correct:        review.Correct,
		CreatedAt:      review.CreatedAt,
	}
}

func wordStatsToResponse(s *stats.WordStats) WordStatsResponse {
	return WordStatsResponse{
		SuccessRate: roundRate(s.SuccessRate),
		StudyCount:  s.StudyCount,
	}
}

func groupStatsToResponse(s *stats.GroupStats) GroupStatsResponse {
	return GroupStatsResponse{
		SuccessRate:  roundRate(s.SuccessRate),
		TotalReviews: s.TotalReviews,
	}
}

func summaryToResponse(s *stats.SessionSummary) SessionSummaryResponse {
	return SessionSummaryResponse{
		CorrectCount:    s.CorrectCount,
		WrongCount:      s.WrongCount,
		DurationSeconds: s.DurationSeconds,
		WordsStudied:    s.WordsStudied,
	}
}
