package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/store"
)

// Pagination defaults for listing endpoints.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseUUIDParam extracts and parses a UUID path parameter.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// parsePage reads the page and page_size query parameters. Missing
// parameters fall back to the defaults; malformed or out-of-range values
// surface as store.ErrInvalidPage via Page.Validate at the store.
func parsePage(r *http.Request) store.Page {
	page := store.Page{Number: 1, Size: defaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.Number = n
		} else {
			page.Number = 0 // fails validation downstream
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.Size = n
		} else {
			page.Size = 0
		}
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}
	return page
}

// parseSort reads the sort_by and order query parameters. An unknown key
// is rejected by the store, never silently defaulted.
func parseSort(r *http.Request, defaultKey string) store.Sort {
	sort := store.Sort{Key: defaultKey, Dir: store.SortAsc}

	if raw := r.URL.Query().Get("sort_by"); raw != "" {
		sort.Key = raw
	}
	if raw := r.URL.Query().Get("order"); raw != "" {
		sort.Dir = store.SortDir(raw)
	}
	return sort
}
