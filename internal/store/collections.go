package store

import "github.com/clarityos/clarity-server/internal/domain"

// Whole-collection accessors for the remaining namespaces. These carry the
// habit tracker, reminders, settings, and money-manager data through the
// backup and export paths; the server itself only lists and replaces them.

// ListHabits returns the habit collection.
func (s *Store) ListHabits() []domain.Habit {
	var habits []domain.Habit
	s.ReadJSON(KeyHabits, &habits)
	return habits
}

// SaveHabits replaces the habit collection.
func (s *Store) SaveHabits(habits []domain.Habit) {
	s.write(KeyHabits, habits)
}

// ListHabitCompletions returns the habit completion collection.
func (s *Store) ListHabitCompletions() []domain.HabitCompletion {
	var completions []domain.HabitCompletion
	s.ReadJSON(KeyHabitCompletions, &completions)
	return completions
}

// SaveHabitCompletions replaces the habit completion collection.
func (s *Store) SaveHabitCompletions(completions []domain.HabitCompletion) {
	s.write(KeyHabitCompletions, completions)
}

// ListReminders returns the reminder collection.
func (s *Store) ListReminders() []domain.Reminder {
	var reminders []domain.Reminder
	s.ReadJSON(KeyReminders, &reminders)
	return reminders
}

// SaveReminders replaces the reminder collection.
func (s *Store) SaveReminders(reminders []domain.Reminder) {
	s.write(KeyReminders, reminders)
}

// DiarySettings returns the diary settings object.
func (s *Store) DiarySettings() map[string]any {
	settings := map[string]any{}
	s.ReadJSON(KeyDiarySettings, &settings)
	return settings
}

// SaveDiarySettings replaces the diary settings object.
func (s *Store) SaveDiarySettings(settings map[string]any) {
	s.write(KeyDiarySettings, settings)
}

// AppSettings returns the app-wide settings object.
func (s *Store) AppSettings() map[string]any {
	settings := map[string]any{}
	s.ReadJSON(KeyAppSettings, &settings)
	return settings
}

// SaveAppSettings replaces the app-wide settings object.
func (s *Store) SaveAppSettings(settings map[string]any) {
	s.write(KeyAppSettings, settings)
}

// ListTransactions returns the money-manager ledger.
func (s *Store) ListTransactions() []domain.Transaction {
	var txns []domain.Transaction
	s.ReadJSON(KeyTransactions, &txns)
	return txns
}

// SaveTransactions replaces the money-manager ledger.
func (s *Store) SaveTransactions(txns []domain.Transaction) {
	s.write(KeyTransactions, txns)
}

// ListBudgets returns the budget collection.
func (s *Store) ListBudgets() []domain.Budget {
	var budgets []domain.Budget
	s.ReadJSON(KeyBudgets, &budgets)
	return budgets
}

// SaveBudgets replaces the budget collection.
func (s *Store) SaveBudgets(budgets []domain.Budget) {
	s.write(KeyBudgets, budgets)
}

// ListNotifications returns the notification records, oldest first.
func (s *Store) ListNotifications() []domain.Notification {
	var notifications []domain.Notification
	s.ReadJSON(KeyNotifications, &notifications)
	return notifications
}

// AppendNotification appends a notification record.
func (s *Store) AppendNotification(n domain.Notification) {
	notifications := append(s.ListNotifications(), n)
	s.write(KeyNotifications, notifications)
}

// MarkNotificationRead flags a notification as read. Unknown ids are a
// no-op.
func (s *Store) MarkNotificationRead(notificationID string) bool {
	notifications := s.ListNotifications()
	for i := range notifications {
		if notifications[i].ID == notificationID {
			if !notifications[i].Read {
				notifications[i].Read = true
				s.write(KeyNotifications, notifications)
			}
			return true
		}
	}
	return false
}

// AppVersionMarker returns the stored application version marker, or ""
// on first run.
func (s *Store) AppVersionMarker() string {
	var version string
	s.ReadJSON(KeyAppVersion, &version)
	return version
}

// SetAppVersionMarker records the running application version.
func (s *Store) SetAppVersionMarker(version string) error {
	return s.WriteJSON(KeyAppVersion, version)
}
