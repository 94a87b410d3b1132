package store

import (
	"time"

	"github.com/clarityos/clarity-server/internal/domain"
)

// entriesKey maps an entry kind to its collection key.
func entriesKey(kind domain.EntryKind) string {
	switch kind {
	case domain.KindWeekly:
		return KeyWeeklyEntries
	case domain.KindMonthly:
		return KeyMonthlyEntries
	default:
		return KeyDailyEntries
	}
}

// RawEntries reads a kind's collection without filtering. Mutation paths and
// snapshot capture use it so rewrites and backups never silently drop rows
// the date filter would hide.
func (s *Store) RawEntries(kind domain.EntryKind) []domain.Entry {
	var entries []domain.Entry
	s.ReadJSON(entriesKey(kind), &entries)
	return entries
}

// ListEntries returns all entries of a kind, dropping any entry whose date
// or creation timestamp is unusable. Corrupted rows degrade analytics and
// streaks instead of breaking them.
func (s *Store) ListEntries(kind domain.EntryKind) []domain.Entry {
	all := s.RawEntries(kind)
	entries := make([]domain.Entry, 0, len(all))
	for _, e := range all {
		if e.HasValidDates() {
			entries = append(entries, e)
		}
	}
	return entries
}

// CreateEntry appends a fully-populated entry to its kind's collection and
// persists the whole collection.
func (s *Store) CreateEntry(e domain.Entry) {
	entries := append(s.RawEntries(e.Kind), e)
	s.write(entriesKey(e.Kind), entries)
}

// UpdateEntry merges patch into the entry with the given id, refreshing
// UpdatedAt. Returns nil when no entry matches; a missing entry is not an
// error.
func (s *Store) UpdateEntry(id string, kind domain.EntryKind, patch domain.EntryPatch) *domain.Entry {
	entries := s.RawEntries(kind)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}

		e := &entries[i]
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		if patch.Content != nil {
			e.Content = *patch.Content
		}
		if patch.Emotion != nil {
			e.Emotion = *patch.Emotion
		}
		if patch.Activities != nil {
			e.Activities = patch.Activities
		}
		for k, v := range patch.Extra {
			if e.Extra == nil {
				e.Extra = make(map[string]any)
			}
			e.Extra[k] = v
		}
		e.UpdatedAt = time.Now()

		updated := *e
		s.write(entriesKey(kind), entries)
		return &updated
	}
	return nil
}

// DeleteEntry removes an entry by id. Deleting an id that does not exist is
// a no-op, not an error; the operation is idempotent.
func (s *Store) DeleteEntry(id string, kind domain.EntryKind) bool {
	entries := s.RawEntries(kind)
	kept := entries[:0]
	removed := false
	for _, e := range entries {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if removed {
		s.write(entriesKey(kind), kept)
	}
	return true
}

// SaveEntries replaces a kind's whole collection. Used by restore.
func (s *Store) SaveEntries(kind domain.EntryKind, entries []domain.Entry) {
	s.write(entriesKey(kind), entries)
}

// FindEntryForPeriod returns the first entry (in collection order) whose
// date falls into the same period as date: same calendar day for daily,
// same ISO week for weekly, same calendar month for monthly. Returns nil
// when no entry matches.
func (s *Store) FindEntryForPeriod(kind domain.EntryKind, date time.Time) *domain.Entry {
	for _, e := range s.ListEntries(kind) {
		if domain.SamePeriod(kind, e.Date, date) {
			found := e
			return &found
		}
	}
	return nil
}
