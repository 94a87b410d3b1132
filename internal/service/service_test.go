package service

import (
	"log/slog"
	"testing"
	"time"

	"github.com/clarityos/clarity-server/internal/store"
	"github.com/clarityos/clarity-server/internal/validation"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testDiaryService(t *testing.T) (*DiaryService, *store.Store) {
	t.Helper()

	s := testStore(t)
	svc := NewDiaryService(s, validation.New(), slog.New(slog.DiscardHandler))
	return svc, s
}

func testWellnessService(t *testing.T) (*WellnessService, *store.Store) {
	t.Helper()

	s := testStore(t)
	svc := NewWellnessService(s, validation.New(), slog.New(slog.DiscardHandler))
	return svc, s
}

func testMoneyService(t *testing.T) (*MoneyService, *store.Store) {
	t.Helper()

	s := testStore(t)
	svc := NewMoneyService(s, validation.New(), slog.New(slog.DiscardHandler))
	return svc, s
}

func testAnalyticsService(t *testing.T) (*AnalyticsService, *store.Store) {
	t.Helper()

	s := testStore(t)
	svc := NewAnalyticsService(s, slog.New(slog.DiscardHandler))
	return svc, s
}
