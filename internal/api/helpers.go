package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clarityos/clarity-server/internal/domain"
)

// entryKind extracts and validates the {kind} route parameter.
func entryKind(r *http.Request) (domain.EntryKind, bool) {
	kind := domain.EntryKind(chi.URLParam(r, "kind"))
	return kind, kind.Valid()
}

// queryDate parses an RFC 3339 or YYYY-MM-DD `date` query parameter,
// defaulting to now when absent.
func queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
