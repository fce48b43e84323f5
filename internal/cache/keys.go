package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies which entity type a cached statistic belongs to.
type Kind string

// Entity kinds appearing in cache keys.
const (
	KindWord    Kind = "word"
	KindGroup   Kind = "group"
	KindSession Kind = "session"
)

// Statistic names appearing in cache keys.
const (
	StatSuccessRate = "success_rate"
	StatWordStats   = "word_stats"
	StatGroupStats  = "group_stats"
	StatSummary     = "summary"
)

// Key identifies one cached statistic by (entity kind, entity id,
// statistic name). The cache is shared by all callers with no per-caller
// namespacing; this structural scheme is what prevents collisions.
type Key struct {
	Kind Kind
	ID   uuid.UUID
	Stat string
}

// String returns the canonical string form "kind:id:stat".
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Kind, k.ID, k.Stat)
}

// entityPrefix returns the string prefix shared by every statistic of
// one entity, used for per-entity invalidation.
func entityPrefix(kind Kind, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:", kind, id)
}
