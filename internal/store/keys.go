package store

// Namespace keys. One key per logical collection; every value is a whole
// JSON document. These names are part of the persisted-state contract:
// renaming one orphans existing data.
const (
	// Diary collections.
	KeyDailyEntries     = "diary:daily"
	KeyWeeklyEntries    = "diary:weekly"
	KeyMonthlyEntries   = "diary:monthly"
	KeyWellness         = "diary:wellness"
	KeyHabits           = "diary:habits"
	KeyHabitCompletions = "diary:habit_completions"
	KeyDiarySettings    = "diary:settings"
	KeyReminders        = "diary:reminders"

	// Money manager collections.
	KeyTransactions = "money:transactions"
	KeyBudgets      = "money:budgets"

	// App-wide state.
	KeyAppSettings   = "app:settings"
	KeyNotifications = "app:notifications"
	KeyAppVersion    = "app:version"

	// Backup slots. Two generations, rotated on every snapshot.
	KeyBackupCurrent  = "backup:current"
	KeyBackupPrevious = "backup:previous"
)
