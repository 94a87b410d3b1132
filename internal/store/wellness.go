package store

import (
	"time"

	"github.com/clarityos/clarity-server/internal/domain"
)

// ListCheckIns returns all wellness check-ins in collection order.
func (s *Store) ListCheckIns() []domain.WellnessCheckIn {
	var checkIns []domain.WellnessCheckIn
	s.ReadJSON(KeyWellness, &checkIns)
	return checkIns
}

// UpsertCheckIn writes a check-in keyed by calendar day. When a check-in for
// the same day already exists its values are replaced wholesale (the second
// submission wins); the original ID and CreatedAt are preserved.
func (s *Store) UpsertCheckIn(c domain.WellnessCheckIn) domain.WellnessCheckIn {
	checkIns := s.ListCheckIns()
	day := domain.DayKey(c.Date)

	for i := range checkIns {
		if domain.DayKey(checkIns[i].Date) != day {
			continue
		}
		c.ID = checkIns[i].ID
		c.CreatedAt = checkIns[i].CreatedAt
		c.UpdatedAt = time.Now()
		checkIns[i] = c
		s.write(KeyWellness, checkIns)
		return c
	}

	checkIns = append(checkIns, c)
	s.write(KeyWellness, checkIns)
	return c
}

// SaveCheckIns replaces the whole check-in collection. Used by restore.
func (s *Store) SaveCheckIns(checkIns []domain.WellnessCheckIn) {
	s.write(KeyWellness, checkIns)
}

// FindCheckInForDay returns the check-in for the given calendar day, or nil.
func (s *Store) FindCheckInForDay(day time.Time) *domain.WellnessCheckIn {
	key := domain.DayKey(day)
	for _, c := range s.ListCheckIns() {
		if domain.DayKey(c.Date) == key {
			found := c
			return &found
		}
	}
	return nil
}
