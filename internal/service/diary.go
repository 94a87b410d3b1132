package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/errors"
	"github.com/clarityos/clarity-server/internal/id"
	"github.com/clarityos/clarity-server/internal/store"
	"github.com/clarityos/clarity-server/internal/validation"
)

// DiaryService owns the entry collections.
type DiaryService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewDiaryService creates a new diary service.
func NewDiaryService(s *store.Store, v *validation.Validator, logger *slog.Logger) *DiaryService {
	return &DiaryService{
		store:     s,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateEntryRequest carries the user-supplied fields of a new entry.
type CreateEntryRequest struct {
	Kind       domain.EntryKind `json:"kind" validate:"required,oneof=daily weekly monthly"`
	Date       time.Time        `json:"date"`
	Content    string           `json:"content"`
	Emotion    string           `json:"emotion,omitempty"`
	Activities []string         `json:"activities,omitempty"`
	Extra      map[string]any   `json:"extra,omitempty"`
}

// CreateEntry assigns an id and timestamps, then appends the entry to its
// kind's collection. The date defaults to the creation time when the client
// leaves it empty.
func (s *DiaryService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*domain.Entry, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Emotion != "" && !domain.KnownEmotion(req.Emotion) {
		return nil, errors.Validationf("unknown emotion %q", req.Emotion)
	}

	now := s.now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	entryID, err := id.Generate(id.PrefixEntry)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate entry id")
	}

	entry := domain.Entry{
		ID:         entryID,
		Kind:       req.Kind,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
		Content:    req.Content,
		Emotion:    req.Emotion,
		Activities: req.Activities,
		Extra:      req.Extra,
	}
	s.store.CreateEntry(entry)

	s.logger.Info("entry created", "id", entry.ID, "kind", entry.Kind)
	return &entry, nil
}

// UpdateEntry merges a patch into an existing entry. Returns ErrNotFound
// when no entry matches; the store itself treats that as a nil, not an
// error, and the service maps it for the API.
func (s *DiaryService) UpdateEntry(ctx context.Context, entryID string, kind domain.EntryKind, patch domain.EntryPatch) (*domain.Entry, error) {
	if !kind.Valid() {
		return nil, errors.Validationf("unknown entry kind %q", kind)
	}
	if patch.Emotion != nil && *patch.Emotion != "" && !domain.KnownEmotion(*patch.Emotion) {
		return nil, errors.Validationf("unknown emotion %q", *patch.Emotion)
	}

	updated := s.store.UpdateEntry(entryID, kind, patch)
	if updated == nil {
		return nil, errors.NotFoundf("entry %s not found", entryID)
	}
	return updated, nil
}

// DeleteEntry removes an entry by id. Deleting a missing id succeeds.
func (s *DiaryService) DeleteEntry(ctx context.Context, entryID string, kind domain.EntryKind) error {
	if !kind.Valid() {
		return errors.Validationf("unknown entry kind %q", kind)
	}
	s.store.DeleteEntry(entryID, kind)
	return nil
}

// ListEntries returns all valid entries of a kind.
func (s *DiaryService) ListEntries(ctx context.Context, kind domain.EntryKind) ([]domain.Entry, error) {
	if !kind.Valid() {
		return nil, errors.Validationf("unknown entry kind %q", kind)
	}
	return s.store.ListEntries(kind), nil
}

// FindForPeriod returns the entry covering the same period as date, or nil.
func (s *DiaryService) FindForPeriod(ctx context.Context, kind domain.EntryKind, date time.Time) (*domain.Entry, error) {
	if !kind.Valid() {
		return nil, errors.Validationf("unknown entry kind %q", kind)
	}
	return s.store.FindEntryForPeriod(kind, date), nil
}

// Streak computes current and longest streaks for a kind, anchored at the
// current period.
func (s *DiaryService) Streak(ctx context.Context, kind domain.EntryKind) (Streak, error) {
	if !kind.Valid() {
		return Streak{}, errors.Validationf("unknown entry kind %q", kind)
	}
	return entryStreak(s.store, kind, s.now()), nil
}
