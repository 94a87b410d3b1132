// Package service implements the ClarityOS business layer: diary entries,
// wellness check-ins, analytics, and the money manager.
package service

import (
	"time"

	"github.com/clarityos/clarity-server/internal/domain"
)

// MaxStreakLookback bounds the backward walk of the streak calculator.
// Streaks longer than this many periods are reported capped. The bound is
// inherited from the shipped behavior; multi-year unbroken streaks were
// never an observed use case.
const MaxStreakLookback = 365

// Streak is a pair of consecutive-period run lengths.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// calculateStreak walks backward one period at a time from `from`, up to
// MaxStreakLookback steps, probing `has` for each period.
//
// Current counts consecutive covered periods starting at step 0; a missing
// entry for the current period means Current is 0 regardless of earlier
// coverage (no grace period). Longest is the maximum run found anywhere in
// the scanned window. A probe that panics on bad data is treated as "no
// entry" for that step and the walk continues.
func calculateStreak(from time.Time, step func(time.Time) time.Time, has func(time.Time) bool) Streak {
	var streak Streak
	run := 0
	atHead := true

	probe := func(t time.Time) (found bool) {
		defer func() {
			if recover() != nil {
				found = false
			}
		}()
		return has(t)
	}

	cursor := from
	for i := 0; i < MaxStreakLookback; i++ {
		if probe(cursor) {
			run++
			if atHead {
				streak.Current = run
			}
			if run > streak.Longest {
				streak.Longest = run
			}
		} else {
			run = 0
			atHead = false
		}
		cursor = step(cursor)
	}

	return streak
}

// entryStreak computes the streak for one diary kind, anchored at now.
func entryStreak(s EntryFinder, kind domain.EntryKind, now time.Time) Streak {
	return calculateStreak(
		domain.PeriodStart(kind, now),
		func(t time.Time) time.Time { return domain.PrevPeriod(kind, t) },
		func(t time.Time) bool { return s.FindEntryForPeriod(kind, t) != nil },
	)
}

// EntryFinder is the slice of the store the streak calculator needs.
type EntryFinder interface {
	FindEntryForPeriod(kind domain.EntryKind, date time.Time) *domain.Entry
}
