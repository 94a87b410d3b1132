package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clarityos/clarity-server/internal/domain"
)

func dayStep(t time.Time) time.Time { return t.AddDate(0, 0, -1) }

func hasDays(days ...time.Time) func(time.Time) bool {
	keys := make(map[string]bool, len(days))
	for _, d := range days {
		keys[domain.DayKey(d)] = true
	}
	return func(t time.Time) bool { return keys[domain.DayKey(t)] }
}

func TestCalculateStreak_ThreeConsecutiveDays(t *testing.T) {
	today := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	streak := calculateStreak(today, dayStep, hasDays(
		today,
		today.AddDate(0, 0, -1),
		today.AddDate(0, 0, -2),
	))

	assert.Equal(t, Streak{Current: 3, Longest: 3}, streak)
}

func TestCalculateStreak_GapResetsCurrent(t *testing.T) {
	today := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	// Today plus a five-day run that ended three days ago.
	days := []time.Time{today}
	for i := 3; i <= 7; i++ {
		days = append(days, today.AddDate(0, 0, -i))
	}

	streak := calculateStreak(today, dayStep, hasDays(days...))
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, 5, streak.Longest)
}

func TestCalculateStreak_MissingHeadZeroesCurrent(t *testing.T) {
	today := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	streak := calculateStreak(today, dayStep, hasDays(
		today.AddDate(0, 0, -1),
		today.AddDate(0, 0, -2),
	))

	assert.Equal(t, 0, streak.Current)
	assert.Equal(t, 2, streak.Longest)
}

func TestCalculateStreak_Empty(t *testing.T) {
	today := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	streak := calculateStreak(today, dayStep, func(time.Time) bool { return false })
	assert.Equal(t, Streak{}, streak)
}

func TestCalculateStreak_CappedAtLookback(t *testing.T) {
	today := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	streak := calculateStreak(today, dayStep, func(time.Time) bool { return true })
	assert.Equal(t, MaxStreakLookback, streak.Current)
	assert.Equal(t, MaxStreakLookback, streak.Longest)
}

func TestCalculateStreak_PanickingProbeTreatedAsAbsent(t *testing.T) {
	today := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	streak := calculateStreak(today, dayStep, func(t time.Time) bool {
		if domain.DayKey(t) == domain.DayKey(yesterday) {
			panic("corrupt row")
		}
		return domain.DayKey(t) == domain.DayKey(today) || domain.DayKey(t) == domain.DayKey(today.AddDate(0, 0, -2))
	})

	// The panicking day breaks the run but not the walk.
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, 1, streak.Longest)
}

func TestCalculateStreak_LongerRunGrowsMonotonically(t *testing.T) {
	today := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	prev := 0
	var days []time.Time
	for n := 1; n <= 30; n++ {
		days = append(days, today.AddDate(0, 0, -(n-1)))
		streak := calculateStreak(today, dayStep, hasDays(days...))
		assert.Equal(t, n, streak.Current)
		assert.GreaterOrEqual(t, streak.Current, prev)
		prev = streak.Current
	}
}

type fakeFinder struct {
	entries map[string]*domain.Entry
}

func (f fakeFinder) FindEntryForPeriod(kind domain.EntryKind, date time.Time) *domain.Entry {
	return f.entries[string(kind)+"/"+domain.DayKey(domain.PeriodStart(kind, date))]
}

func TestEntryStreak_WeeklyPeriods(t *testing.T) {
	// Thursday; the ISO week starts Monday 2026-03-09.
	now := time.Date(2026, time.March, 12, 15, 0, 0, 0, time.UTC)

	finder := fakeFinder{entries: map[string]*domain.Entry{
		"weekly/2026-03-09": {ID: "ent-w0"},
		"weekly/2026-03-02": {ID: "ent-w1"},
	}}

	streak := entryStreak(finder, domain.KindWeekly, now)
	assert.Equal(t, Streak{Current: 2, Longest: 2}, streak)
}
