// Package stats implements the aggregate calculator: pure, deterministic
// functions that derive statistics from word review events. The functions
// here never perform I/O; callers are responsible for fetching review
// items from the ledger and for any caching of the results.
//
// All functions expect their input slice to be ordered ascending by
// CreatedAt, which is how the ledger store returns events.
package stats

import (
	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/domain"
)

// WordStats holds the derived statistics for a single word.
// SuccessRate is kept unrounded; rounding happens only at the
// presentation boundary.
type WordStats struct {
	SuccessRate float64 `json:"success_rate"`
	StudyCount  int     `json:"study_count"`
}

// GroupStats holds the derived statistics for a group of words, computed
// over every review of every word in the group.
type GroupStats struct {
	SuccessRate  float64 `json:"success_rate"`
	TotalReviews int     `json:"total_reviews"`
}

// SessionSummary holds the derived statistics for a single study session.
// DurationSeconds is nil while the session is still open.
type SessionSummary struct {
	CorrectCount    int      `json:"correct_count"`
	WrongCount      int      `json:"wrong_count"`
	DurationSeconds *float64 `json:"duration_seconds"`
	WordsStudied    int      `json:"words_studied"`
}

// SuccessRate computes the fraction of correct reviews in the given items.
// Returns exactly 0 for an empty input; it never divides by zero and
// never produces NaN.
func SuccessRate(items []domain.WordReviewItem) float64 {
	if len(items) == 0 {
		return 0
	}

	correct := 0
	for _, item := range items {
		if item.Correct {
			correct++
		}
	}

	return float64(correct) / float64(len(items))
}

// CurrentStreak computes the length of the trailing run of consecutive
// correct reviews ending at the most recent item. Returns 0 if the most
// recent item was answered incorrectly or the input is empty.
func CurrentStreak(items []domain.WordReviewItem) int {
	streak := 0
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Correct {
			break
		}
		streak++
	}

	return streak
}

// ComputeWordStats derives the per-word statistics from all reviews of a
// single word.
func ComputeWordStats(items []domain.WordReviewItem) WordStats {
	return WordStats{
		SuccessRate: SuccessRate(items),
		StudyCount:  len(items),
	}
}

// ComputeGroupStats derives the per-group statistics from all reviews of
// all words belonging to the group.
func ComputeGroupStats(items []domain.WordReviewItem) GroupStats {
	return GroupStats{
		SuccessRate:  SuccessRate(items),
		TotalReviews: len(items),
	}
}

// ComputeSessionSummary derives the summary for one session from the
// session entity and all reviews recorded inside it.
func ComputeSessionSummary(
	session *domain.StudySession,
	items []domain.WordReviewItem,
) SessionSummary {
	summary := SessionSummary{}

	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.Correct {
			summary.CorrectCount++
		} else {
			summary.WrongCount++
		}

		if _, ok := seen[item.WordID]; !ok {
			seen[item.WordID] = struct{}{}
			summary.WordsStudied++
		}
	}

	if session != nil && session.EndedAt != nil {
		duration := session.EndedAt.Sub(session.CreatedAt).Seconds()
		summary.DurationSeconds = &duration
	}

	return summary
}
