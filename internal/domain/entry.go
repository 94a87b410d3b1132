package domain

import "time"

// EntryKind determines which collection holds an entry and how "the same
// period" is computed for it (calendar day, ISO week, calendar month).
type EntryKind string

const (
	// KindDaily anchors an entry to a calendar day.
	KindDaily EntryKind = "daily"
	// KindWeekly anchors an entry to an ISO week (Monday start).
	KindWeekly EntryKind = "weekly"
	// KindMonthly anchors an entry to a calendar month.
	KindMonthly EntryKind = "monthly"
)

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case KindDaily, KindWeekly, KindMonthly:
		return true
	}
	return false
}

// Kinds lists all entry kinds in collection order.
func Kinds() []EntryKind {
	return []EntryKind{KindDaily, KindWeekly, KindMonthly}
}

// Entry is a single diary record. Kind is fixed at creation.
//
// Extra collects JSON members the server does not model (gratitude lists,
// achievements, future client fields). They round-trip through storage and
// backups untouched.
type Entry struct {
	ID         string    `json:"id"`
	Kind       EntryKind `json:"kind"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Content    string    `json:"content,omitempty"`
	Emotion    string    `json:"emotion,omitempty"`
	Activities []string  `json:"activities,omitempty"`

	Extra map[string]any `json:",unknown"`
}

// HasValidDates reports whether the entry's date and creation timestamp are
// usable. List operations drop entries that fail this check rather than
// letting corrupted rows break analytics.
func (e *Entry) HasValidDates() bool {
	return !e.Date.IsZero() && !e.CreatedAt.IsZero()
}

// EntryPatch is a partial update applied with merge semantics. Nil fields
// are left untouched; UpdatedAt always advances.
type EntryPatch struct {
	Date       *time.Time     `json:"date,omitempty"`
	Content    *string        `json:"content,omitempty"`
	Emotion    *string        `json:"emotion,omitempty"`
	Activities []string       `json:"activities,omitempty"`
	Extra      map[string]any `json:"extra,omitempty"`
}
