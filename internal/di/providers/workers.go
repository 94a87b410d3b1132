package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/clarityos/clarity-server/internal/backup"
	"github.com/clarityos/clarity-server/internal/config"
	"github.com/clarityos/clarity-server/internal/logger"
)

// BackupServiceHandle wraps the backup service with shutdown capability.
// Starting it runs the update detection and staleness check immediately,
// then keeps the periodic snapshot loop running until shutdown.
type BackupServiceHandle struct {
	*backup.Service
}

// Shutdown implements do.Shutdownable.
func (h *BackupServiceHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideBackupService provides the backup service with its periodic job started.
func ProvideBackupService(i do.Injector) (*BackupServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := backup.NewService(storeHandle.Store, cfg.App.Version, cfg.Backup.Interval, log.Logger)
	svc.Start(context.Background())

	log.Info("Backup service started", "interval", cfg.Backup.Interval)

	return &BackupServiceHandle{Service: svc}, nil
}
