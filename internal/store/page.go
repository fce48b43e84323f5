package store

import "fmt"

// SortDir is the direction of a sorted listing.
type SortDir string

// Allowed sort directions.
const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Sort describes how a listing should be ordered. Key must be one of the
// enumerated allowed keys for the entity being listed; an unknown key is
// a validation error, never a silent default.
type Sort struct {
	Key string
	Dir SortDir
}

// Page describes which slice of a listing to return. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Allowed sort keys per entity. These are the contract surface the glue
// layer validates against before calling the core.
var (
	WordSortKeys    = []string{"native_text", "created_at"}
	GroupSortKeys   = []string{"name", "word_count", "created_at"}
	SessionSortKeys = []string{"created_at", "ended_at"}
	ReviewSortKeys  = []string{"created_at"}
)

// Validate checks the page parameters. Page numbers are 1-based and the
// size must be positive.
func (p Page) Validate() error {
	if p.Number < 1 {
		return fmt.Errorf("%w: page number %d (pages are 1-based)", ErrInvalidPage, p.Number)
	}
	if p.Size < 1 {
		return fmt.Errorf("%w: page size %d", ErrInvalidPage, p.Size)
	}
	return nil
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Validate checks the sort against the allowed keys for an entity.
// An empty key is allowed and means the store's natural order.
func (s Sort) Validate(allowedKeys []string) error {
	if s.Key != "" {
		found := false
		for _, key := range allowedKeys {
			if s.Key == key {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrInvalidSortKey, s.Key)
		}
	}

	switch s.Dir {
	case "", SortAsc, SortDesc:
		return nil
	default:
		return fmt.Errorf("%w: direction %q", ErrInvalidSortKey, s.Dir)
	}
}

// TotalPages computes the number of pages needed to hold total items at
// the given page size. Zero items yield zero pages.
func TotalPages(total, size int) int {
	if size < 1 || total < 1 {
		return 0
	}
	return (total + size - 1) / size
}
