package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarityos/clarity-server/internal/backup"
	"github.com/clarityos/clarity-server/internal/http/response"
	"github.com/clarityos/clarity-server/internal/ratelimit"
	"github.com/clarityos/clarity-server/internal/service"
	"github.com/clarityos/clarity-server/internal/store"
	"github.com/clarityos/clarity-server/internal/validation"
)

// setupTestServer creates a server over a throwaway database.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	st, err := store.Open(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	v := validation.New()
	limiter := ratelimit.New(1000, 1000)
	t.Cleanup(limiter.Stop)
	return NewServer(
		st,
		service.NewDiaryService(st, v, logger),
		service.NewWellnessService(st, v, logger),
		service.NewAnalyticsService(st, logger),
		service.NewMoneyService(st, v, logger),
		backup.NewService(st, "1.4.0-test", 24*time.Hour, logger),
		limiter,
		logger,
	)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
}

func TestEntryLifecycle(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/entries/daily/",
		`{"content":"first note","emotion":"happy","activities":["walking"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/entries/daily/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.Data.ID)

	rec = doRequest(t, s, http.MethodPatch, "/api/v1/entries/daily/"+created.Data.ID,
		`{"content":"revised note"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "revised note")

	rec = doRequest(t, s, http.MethodGet, "/api/v1/entries/daily/streak", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current":1`)

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/entries/daily/"+created.Data.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Deleting again still succeeds.
	rec = doRequest(t, s, http.MethodDelete, "/api/v1/entries/daily/"+created.Data.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEntryRoutes_UnknownKind(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/entries/hourly/", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEntryUpdate_MissingIs404(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPatch, "/api/v1/entries/daily/ent-missing", `{"content":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWellnessCheckInAndToday(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/wellness/today", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/wellness/",
		`{"mood":8,"stress":2,"energy":9,"emotions":["calm","bogus"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"wellnessScore":87`)
	assert.NotContains(t, rec.Body.String(), "bogus")

	rec = doRequest(t, s, http.MethodGet, "/api/v1/wellness/today", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/wellness/analytics?days=7", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"checkInCount":1`)
}

func TestAnalyticsEndpoints_EmptyStore(t *testing.T) {
	s := setupTestServer(t)

	for _, path := range []string{
		"/api/v1/analytics/emotions",
		"/api/v1/analytics/words",
		"/api/v1/analytics/activities",
		"/api/v1/analytics/time-patterns",
		"/api/v1/analytics/writing",
		"/api/v1/analytics/goals",
		"/api/v1/analytics/insights",
	} {
		rec := doRequest(t, s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestMoneyEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/money/transactions",
		`{"type":"expense","category":"groceries","amount":"42.50"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodPut, "/api/v1/money/budgets/groceries", `{"monthly":"300"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/money/summary", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "groceries")
}

func TestAdminBackupFlow(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/entries/daily/", `{"content":"keep me"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/admin/backups", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodGet, "/api/v1/admin/backups", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"entries":1`)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/admin/restore", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/admin/export/csv/daily", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "keep me")

	// The JSON export serves the indented snapshot envelope as a download.
	rec = doRequest(t, s, http.MethodGet, "/api/v1/admin/export/json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "\n  \"version\"")
	assert.Contains(t, rec.Body.String(), "keep me")
}

func TestAdminRestore_NoBackupIs404(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/admin/restore", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	st, err := store.Open(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	v := validation.New()
	limiter := ratelimit.New(1, 2)
	t.Cleanup(limiter.Stop)
	s := NewServer(
		st,
		service.NewDiaryService(st, v, logger),
		service.NewWellnessService(st, v, logger),
		service.NewAnalyticsService(st, logger),
		service.NewMoneyService(st, v, logger),
		backup.NewService(st, "1.4.0-test", 24*time.Hour, logger),
		limiter,
		logger,
	)

	codes := make(map[int]int)
	for i := 0; i < 5; i++ {
		rec := doRequest(t, s, http.MethodGet, "/health", "")
		codes[rec.Code]++
	}
	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 3, codes[http.StatusTooManyRequests])
}
