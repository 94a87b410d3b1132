package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/clarityos/clarity-server/internal/backup"
	"github.com/clarityos/clarity-server/internal/backup/export"
	domainerrors "github.com/clarityos/clarity-server/internal/errors"
)

func (s *Server) registerAdminBackupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createBackup",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/backups",
		Summary:     "Create backup",
		Description: "Snapshots every namespace and rotates the backup generations",
		Tags:        []string{"Admin", "Backup"},
	}, s.handleCreateBackup)

	huma.Register(s.api, huma.Operation{
		OperationID: "backupStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/backups",
		Summary:     "Backup status",
		Description: "Describes the current and previous backup generations",
		Tags:        []string{"Admin", "Backup"},
	}, s.handleBackupStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "restore",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/restore",
		Summary:     "Restore from backup",
		Description: "Overwrites live collections from the current backup generation",
		Tags:        []string{"Admin", "Backup"},
	}, s.handleRestore)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportJSON",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/export/json",
		Summary:     "Export all data as JSON",
		Description: "Returns a fresh snapshot envelope; the same shape import accepts",
		Tags:        []string{"Admin", "Export"},
	}, s.handleExportJSON)

	huma.Register(s.api, huma.Operation{
		OperationID: "importBackup",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/import",
		Summary:     "Import a snapshot",
		Description: "Validates the envelope, stores it as the current backup, and applies it",
		Tags:        []string{"Admin", "Backup"},
	}, s.handleImport)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportCSV",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/export/csv/{table}",
		Summary:     "Export one table as CSV",
		Description: "Tables: daily, weekly, monthly, habits, wellbeing",
		Tags:        []string{"Admin", "Export"},
	}, s.handleExportCSV)
}

// === DTOs ===

// BackupSummary describes one backup generation without its payload.
type BackupSummary struct {
	ID        string    `json:"id,omitempty" doc:"Snapshot identifier"`
	Version   string    `json:"version" doc:"Snapshot format version"`
	Timestamp time.Time `json:"timestamp" doc:"When the snapshot was taken"`
	Entries   int       `json:"entries" doc:"Diary entries across all kinds"`
	CheckIns  int       `json:"checkIns" doc:"Wellness check-ins"`
}

func summarize(snap *backup.Snapshot) *BackupSummary {
	if snap == nil {
		return nil
	}
	return &BackupSummary{
		ID:        snap.ID,
		Version:   snap.Version,
		Timestamp: snap.Timestamp,
		Entries: len(snap.Diary.DailyEntries) +
			len(snap.Diary.WeeklyEntries) +
			len(snap.Diary.MonthlyEntries),
		CheckIns: len(snap.Diary.Wellness),
	}
}

// CreateBackupOutput is the Huma output for creating a backup.
type CreateBackupOutput struct {
	Body BackupSummary
}

// BackupStatusOutput is the Huma output for the status endpoint.
type BackupStatusOutput struct {
	Body struct {
		Current  *BackupSummary `json:"current,omitempty" doc:"Newest generation"`
		Previous *BackupSummary `json:"previous,omitempty" doc:"Generation before last"`
	}
}

// RestoreOutput is the Huma output for a restore.
type RestoreOutput struct {
	Body BackupSummary
}

// ExportJSONOutput is the Huma output for the JSON export.
type ExportJSONOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ImportInput is the Huma input for importing a snapshot.
type ImportInput struct {
	Body backup.Snapshot
}

// ImportOutput is the Huma output for importing a snapshot.
type ImportOutput struct {
	Body struct {
		Message string `json:"message" doc:"Success message"`
	}
}

// ExportCSVInput is the Huma input for the CSV export.
type ExportCSVInput struct {
	Table string `path:"table" doc:"Table to export" enum:"daily,weekly,monthly,habits,wellbeing"`
}

// ExportCSVOutput is the Huma output for the CSV export.
type ExportCSVOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// === Handlers ===

func (s *Server) handleCreateBackup(ctx context.Context, _ *struct{}) (*CreateBackupOutput, error) {
	snap, err := s.backupService.Create(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to create backup", err)
	}
	return &CreateBackupOutput{Body: *summarize(snap)}, nil
}

func (s *Server) handleBackupStatus(ctx context.Context, _ *struct{}) (*BackupStatusOutput, error) {
	out := &BackupStatusOutput{}

	current, err := s.backupService.Current(ctx)
	if err != nil && !domainerrors.Is(err, domainerrors.ErrNoBackup) {
		return nil, err
	}
	previous, err := s.backupService.Previous(ctx)
	if err != nil && !domainerrors.Is(err, domainerrors.ErrNoBackup) {
		return nil, err
	}

	out.Body.Current = summarize(current)
	out.Body.Previous = summarize(previous)
	return out, nil
}

func (s *Server) handleRestore(ctx context.Context, _ *struct{}) (*RestoreOutput, error) {
	snap, err := s.backupService.Restore(ctx)
	if err != nil {
		return nil, err
	}
	return &RestoreOutput{Body: *summarize(snap)}, nil
}

func (s *Server) handleExportJSON(ctx context.Context, _ *struct{}) (*ExportJSONOutput, error) {
	// A fresh snapshot of the live collections, not the backup slot: the
	// export should reflect what the user sees right now.
	snap, err := s.backupService.Create(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to capture export", err)
	}
	data, err := export.ExportJSON(snap)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to encode export", err)
	}
	return &ExportJSONOutput{
		ContentType:        "application/json; charset=utf-8",
		ContentDisposition: "attachment; filename=clarityos-export.json",
		Body:               data,
	}, nil
}

func (s *Server) handleImport(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if err := s.backupService.Import(ctx, input.Body); err != nil {
		return nil, err
	}

	out := &ImportOutput{}
	out.Body.Message = "snapshot imported"
	return out, nil
}

func (s *Server) handleExportCSV(ctx context.Context, input *ExportCSVInput) (*ExportCSVOutput, error) {
	data, err := s.exporter.ExportCSV(input.Table)
	if err != nil {
		return nil, err
	}
	return &ExportCSVOutput{
		ContentType:        "text/csv; charset=utf-8",
		ContentDisposition: "attachment; filename=clarityos-" + input.Table + ".csv",
		Body:               data,
	}, nil
}
