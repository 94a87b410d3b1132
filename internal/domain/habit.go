package domain

import "time"

// Habit is a tracked recurring activity. Habits are created by the client
// and carried through backups and exports; the server does not schedule
// them.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived,omitempty"`
}

// HabitCompletion marks a habit as done for one calendar day.
type HabitCompletion struct {
	HabitID     string    `json:"habitId"`
	Date        time.Time `json:"date"`
	CompletedAt time.Time `json:"completedAt"`
}

// Reminder is a client-side notification schedule.
type Reminder struct {
	ID      string   `json:"id"`
	Message string   `json:"message"`
	Time    string   `json:"time"` // "HH:MM" in the client's local time
	Days    []string `json:"days,omitempty"`
	Enabled bool     `json:"enabled"`
}

// NotificationType classifies server-generated notifications.
type NotificationType string

const (
	// NotificationAppUpdate is emitted when a version change triggered a
	// safety backup.
	NotificationAppUpdate NotificationType = "app_update"
)

// Notification is an append-only user-facing message record.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}
