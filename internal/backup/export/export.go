// Package export renders the persisted collections as downloadable JSON
// and CSV documents. Pure formatting; nothing here writes to the store.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/errors"
)

// Source is the slice of the store the exporter reads from.
type Source interface {
	ListEntries(kind domain.EntryKind) []domain.Entry
	ListCheckIns() []domain.WellnessCheckIn
	ListHabits() []domain.Habit
	ListHabitCompletions() []domain.HabitCompletion
}

// Exporter formats collections for download.
type Exporter struct {
	source Source
}

// New creates an Exporter over the given source.
func New(source Source) *Exporter {
	return &Exporter{source: source}
}

// CSV table names accepted by ExportCSV.
const (
	TableDaily     = "daily"
	TableWeekly    = "weekly"
	TableMonthly   = "monthly"
	TableHabits    = "habits"
	TableWellbeing = "wellbeing"
)

// Tables lists the CSV tables in a stable order.
func Tables() []string {
	return []string{TableDaily, TableWeekly, TableMonthly, TableHabits, TableWellbeing}
}

// ExportJSON marshals v (normally the backup snapshot envelope) verbatim,
// indented for human inspection. The output is the import wire format.
func ExportJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v, jsontext.WithIndent("  "))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "marshal export")
	}
	return data, nil
}

// ExportCSV renders one table as CSV with a fixed header row.
func (e *Exporter) ExportCSV(table string) ([]byte, error) {
	switch table {
	case TableDaily:
		return e.journalCSV(domain.KindDaily)
	case TableWeekly:
		return e.journalCSV(domain.KindWeekly)
	case TableMonthly:
		return e.journalCSV(domain.KindMonthly)
	case TableHabits:
		return e.habitsCSV()
	case TableWellbeing:
		return e.wellbeingCSV()
	default:
		return nil, errors.Validationf("unknown export table %q (expected one of: %s)",
			table, strings.Join(Tables(), ", "))
	}
}

func (e *Exporter) journalCSV(kind domain.EntryKind) ([]byte, error) {
	rows := [][]string{{"date", "content", "emotion", "activities", "createdAt", "updatedAt"}}
	for _, entry := range e.source.ListEntries(kind) {
		rows = append(rows, []string{
			domain.DayKey(entry.Date),
			entry.Content,
			entry.Emotion,
			strings.Join(entry.Activities, "; "),
			entry.CreatedAt.Format(time.RFC3339),
			entry.UpdatedAt.Format(time.RFC3339),
		})
	}
	return writeCSV(rows)
}

func (e *Exporter) habitsCSV() ([]byte, error) {
	completions := make(map[string]int)
	lastDone := make(map[string]time.Time)
	for _, c := range e.source.ListHabitCompletions() {
		completions[c.HabitID]++
		if c.Date.After(lastDone[c.HabitID]) {
			lastDone[c.HabitID] = c.Date
		}
	}

	rows := [][]string{{"name", "createdAt", "archived", "completions", "lastCompleted"}}
	for _, h := range e.source.ListHabits() {
		last := ""
		if !lastDone[h.ID].IsZero() {
			last = domain.DayKey(lastDone[h.ID])
		}
		rows = append(rows, []string{
			h.Name,
			h.CreatedAt.Format(time.RFC3339),
			strconv.FormatBool(h.Archived),
			strconv.Itoa(completions[h.ID]),
			last,
		})
	}
	return writeCSV(rows)
}

func (e *Exporter) wellbeingCSV() ([]byte, error) {
	rows := [][]string{{"date", "mood", "stress", "energy", "wellnessScore", "emotions", "notes"}}
	for _, c := range e.source.ListCheckIns() {
		rows = append(rows, []string{
			domain.DayKey(c.Date),
			strconv.Itoa(c.Mood),
			strconv.Itoa(c.Stress),
			strconv.Itoa(c.Energy),
			strconv.Itoa(c.WellnessScore),
			strings.Join(c.Emotions, "; "),
			c.Notes,
		})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
