// Package backup snapshots every persisted namespace into a versioned
// envelope, rotates two generations of it, and restores from the current
// generation on demand.
package backup

import (
	"time"

	"github.com/google/uuid"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/store"
)

// FormatVersion tags the snapshot envelope. Bump on incompatible shape
// changes; restore does not translate between versions.
const FormatVersion = "1.0"

// MoneySection holds the money-manager namespaces.
type MoneySection struct {
	Transactions []domain.Transaction `json:"transactions,omitempty"`
	Budgets      []domain.Budget      `json:"budgets,omitempty"`
}

// DiarySection holds the diary namespaces, wellness and habit data
// included.
type DiarySection struct {
	DailyEntries     []domain.Entry           `json:"dailyEntries,omitempty"`
	WeeklyEntries    []domain.Entry           `json:"weeklyEntries,omitempty"`
	MonthlyEntries   []domain.Entry           `json:"monthlyEntries,omitempty"`
	Wellness         []domain.WellnessCheckIn `json:"wellness,omitempty"`
	Habits           []domain.Habit           `json:"habits,omitempty"`
	HabitCompletions []domain.HabitCompletion `json:"habitCompletions,omitempty"`
	Settings         map[string]any           `json:"settings,omitempty"`
	Reminders        []domain.Reminder        `json:"reminders,omitempty"`
}

// Snapshot is the backup envelope: a deep, self-contained copy of every
// namespace, restorable with no other inputs. It is also the wire shape of
// the JSON export and import features.
type Snapshot struct {
	// ID names one snapshot generation; not part of the envelope check, so
	// imported payloads without one are accepted.
	ID          string         `json:"id,omitempty"`
	Version     string         `json:"version"`
	Timestamp   time.Time      `json:"timestamp"`
	Money       MoneySection   `json:"moneyManager"`
	Diary       DiarySection   `json:"diary"`
	AppSettings map[string]any `json:"appSettings,omitempty"`
}

// ValidEnvelope reports whether the snapshot carries the minimal envelope:
// a version tag and a timestamp. Nothing deeper is checked; a snapshot with
// a valid envelope and corrupted sections restores verbatim.
func (s *Snapshot) ValidEnvelope() bool {
	return s.Version != "" && !s.Timestamp.IsZero()
}

// capture reads every namespace into a fresh snapshot. Entry collections are
// read unfiltered: rows the date filter hides from analytics still belong to
// the namespace, and a restore must bring them back untouched. The reads are
// not transactional across keys; each namespace is read at a slightly
// different instant (see the store package doc for the single-writer
// assumption).
func capture(s *store.Store, now time.Time) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		Version:   FormatVersion,
		Timestamp: now,
		Money: MoneySection{
			Transactions: s.ListTransactions(),
			Budgets:      s.ListBudgets(),
		},
		Diary: DiarySection{
			DailyEntries:     s.RawEntries(domain.KindDaily),
			WeeklyEntries:    s.RawEntries(domain.KindWeekly),
			MonthlyEntries:   s.RawEntries(domain.KindMonthly),
			Wellness:         s.ListCheckIns(),
			Habits:           s.ListHabits(),
			HabitCompletions: s.ListHabitCompletions(),
			Settings:         s.DiarySettings(),
			Reminders:        s.ListReminders(),
		},
		AppSettings: s.AppSettings(),
	}
}

// apply overwrites each live namespace that the snapshot populates. Empty
// sections are skipped rather than clearing live data.
func apply(s *store.Store, snap Snapshot) {
	if snap.Money.Transactions != nil {
		s.SaveTransactions(snap.Money.Transactions)
	}
	if snap.Money.Budgets != nil {
		s.SaveBudgets(snap.Money.Budgets)
	}
	if snap.Diary.DailyEntries != nil {
		s.SaveEntries(domain.KindDaily, snap.Diary.DailyEntries)
	}
	if snap.Diary.WeeklyEntries != nil {
		s.SaveEntries(domain.KindWeekly, snap.Diary.WeeklyEntries)
	}
	if snap.Diary.MonthlyEntries != nil {
		s.SaveEntries(domain.KindMonthly, snap.Diary.MonthlyEntries)
	}
	if snap.Diary.Wellness != nil {
		s.SaveCheckIns(snap.Diary.Wellness)
	}
	if snap.Diary.Habits != nil {
		s.SaveHabits(snap.Diary.Habits)
	}
	if snap.Diary.HabitCompletions != nil {
		s.SaveHabitCompletions(snap.Diary.HabitCompletions)
	}
	if snap.Diary.Settings != nil {
		s.SaveDiarySettings(snap.Diary.Settings)
	}
	if snap.Diary.Reminders != nil {
		s.SaveReminders(snap.Diary.Reminders)
	}
	if snap.AppSettings != nil {
		s.SaveAppSettings(snap.AppSettings)
	}
}
