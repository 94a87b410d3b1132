package domain

import "time"

// PeriodStart truncates t to the start of its period for the given kind:
// midnight for daily, Monday midnight for weekly (ISO week), the first of
// the month for monthly. The location of t is preserved.
func PeriodStart(kind EntryKind, t time.Time) time.Time {
	year, month, day := t.Date()
	switch kind {
	case KindWeekly:
		// time.Weekday puts Sunday at 0; shift so Monday is day 0.
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(year, month, day-offset, 0, 0, 0, 0, t.Location())
	case KindMonthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	}
}

// SamePeriod reports whether a and b fall into the same period for kind.
func SamePeriod(kind EntryKind, a, b time.Time) bool {
	return PeriodStart(kind, a).Equal(PeriodStart(kind, b))
}

// PrevPeriod steps one period backward from t.
func PrevPeriod(kind EntryKind, t time.Time) time.Time {
	switch kind {
	case KindWeekly:
		return t.AddDate(0, 0, -7)
	case KindMonthly:
		return t.AddDate(0, -1, 0)
	default:
		return t.AddDate(0, 0, -1)
	}
}

// DayKey formats t as a calendar-day key in t's location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
