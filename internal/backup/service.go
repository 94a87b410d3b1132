package backup

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/errors"
	"github.com/clarityos/clarity-server/internal/id"
	"github.com/clarityos/clarity-server/internal/store"
)

// Service owns the backup slots and the periodic snapshot timer. Construct
// it explicitly and inject it; lifecycle is Start/Stop, there is no hidden
// global instance.
type Service struct {
	store      *store.Store
	appVersion string
	interval   time.Duration
	logger     *slog.Logger
	now        func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a backup service snapshotting at the given interval.
func NewService(s *store.Store, appVersion string, interval time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:      s,
		appVersion: appVersion,
		interval:   interval,
		logger:     logger,
		now:        time.Now,
	}
}

// Create captures every namespace into a new snapshot, rotates the current
// slot into the previous slot, and writes the new snapshot as current. A
// failure leaves both prior generations untouched.
//
// Two consecutive calls discard the generation before last; only two
// generations are ever retained.
func (s *Service) Create(ctx context.Context) (*Snapshot, error) {
	snap := capture(s.store, s.now())

	if raw, ok := s.store.GetRaw(store.KeyBackupCurrent); ok {
		if err := s.store.SetRaw(store.KeyBackupPrevious, raw); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "rotate backup")
		}
	}
	if err := s.store.WriteJSON(store.KeyBackupCurrent, snap); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "write backup")
	}

	s.logger.Info("backup created", "id", snap.ID, "timestamp", snap.Timestamp)
	return &snap, nil
}

// Restore reads the current backup slot and overwrites every live namespace
// the snapshot populates. A missing slot is a no-op failure, not a crash.
// Validation stops at the envelope; inner sections restore verbatim even if
// they are nonsense.
func (s *Service) Restore(ctx context.Context) (*Snapshot, error) {
	snap, err := s.readSlot(store.KeyBackupCurrent)
	if err != nil {
		return nil, err
	}

	apply(s.store, *snap)
	s.logger.Info("restored from backup", "id", snap.ID, "timestamp", snap.Timestamp)
	return snap, nil
}

// Import validates a caller-supplied snapshot's envelope, stores it as the
// current backup (rotating the existing one), and applies it to the live
// namespaces. This is the file-import path; the snapshot shape is the same
// as the JSON export.
func (s *Service) Import(ctx context.Context, snap Snapshot) error {
	if !snap.ValidEnvelope() {
		return errors.Validation("snapshot envelope must carry version and timestamp")
	}

	if raw, ok := s.store.GetRaw(store.KeyBackupCurrent); ok {
		if err := s.store.SetRaw(store.KeyBackupPrevious, raw); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "rotate backup")
		}
	}
	if err := s.store.WriteJSON(store.KeyBackupCurrent, snap); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "write imported backup")
	}

	apply(s.store, snap)
	s.logger.Info("imported backup", "timestamp", snap.Timestamp)
	return nil
}

// Current returns the snapshot in the current slot.
func (s *Service) Current(ctx context.Context) (*Snapshot, error) {
	return s.readSlot(store.KeyBackupCurrent)
}

// Previous returns the snapshot in the previous slot.
func (s *Service) Previous(ctx context.Context) (*Snapshot, error) {
	return s.readSlot(store.KeyBackupPrevious)
}

func (s *Service) readSlot(key string) (*Snapshot, error) {
	raw, ok := s.store.GetRaw(key)
	if !ok {
		return nil, errors.NoBackup("no backup available")
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.Wrap(err, errors.CodeNoBackup, "backup does not parse")
	}
	if !snap.ValidEnvelope() {
		return nil, errors.NoBackup("backup envelope is incomplete")
	}
	return &snap, nil
}

// CheckAndCreate creates a backup when none exists or when the current one
// is older than the configured interval. Called at startup and on every
// timer tick; failures are logged, never fatal.
func (s *Service) CheckAndCreate(ctx context.Context) {
	if snap, err := s.Current(ctx); err == nil {
		age := s.now().Sub(snap.Timestamp)
		if age < s.interval {
			return
		}
		s.logger.Info("backup is stale", "age", age, "interval", s.interval)
	}

	if _, err := s.Create(ctx); err != nil {
		s.logger.Error("periodic backup failed", "error", err)
	}
}

// DetectAppUpdate compares the stored version marker against the running
// version. First run records the marker. A mismatch forces an immediate
// backup before any new code touches the data, updates the marker, and
// appends a user-facing notification.
func (s *Service) DetectAppUpdate(ctx context.Context) {
	stored := s.store.AppVersionMarker()
	if stored == s.appVersion {
		return
	}

	if stored == "" {
		if err := s.store.SetAppVersionMarker(s.appVersion); err != nil {
			s.logger.Error("record version marker failed", "error", err)
		}
		return
	}

	s.logger.Info("application version changed", "from", stored, "to", s.appVersion)
	if _, err := s.Create(ctx); err != nil {
		s.logger.Error("update-triggered backup failed", "error", err)
	}
	if err := s.store.SetAppVersionMarker(s.appVersion); err != nil {
		s.logger.Error("update version marker failed", "error", err)
	}

	s.store.AppendNotification(domain.Notification{
		ID:        id.MustGenerate(id.PrefixNotification),
		Type:      domain.NotificationAppUpdate,
		Message:   fmt.Sprintf("ClarityOS updated from %s to %s. A safety backup was created.", stored, s.appVersion),
		CreatedAt: s.now(),
	})
}

// Start runs the update check, an initial CheckAndCreate, and the periodic
// timer. Calling Start twice is a no-op until Stop.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan struct{})

	s.DetectAppUpdate(ctx)
	s.CheckAndCreate(ctx)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CheckAndCreate(ctx)
			}
		}
	}()

	s.logger.Info("backup timer started", "interval", s.interval)
}

// Stop cancels the timer and waits for the loop to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	s.logger.Info("backup timer stopped")
}
