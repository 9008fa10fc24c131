package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskMediaScan is the task type for the media library maintenance scan.
	TaskMediaScan = "media:scan"
	// TaskAuditPrune is the task type for pruning old activity log entries.
	TaskAuditPrune = "audit:prune"
)

// AuditPrunePayload configures one retention run.
type AuditPrunePayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewMediaScanTask constructs the library scan task.
func NewMediaScanTask() *asynq.Task {
	return asynq.NewTask(TaskMediaScan, nil)
}

// NewAuditPruneTask constructs a retention task.
func NewAuditPruneTask(payload AuditPrunePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditPrune, data), nil
}

// MediaLibrary is the slice of the media service the scan needs.
type MediaLibrary interface {
	ScanOrphans(ctx context.Context) ([]string, error)
}

// AuditStore is the slice of the activity log store the pruner needs.
type AuditStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewMediaScanHandler reports files in the upload directory that are not
// library images. They are logged rather than removed so an operator decides.
func NewMediaScanHandler(library MediaLibrary, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		orphans, err := library.ScanOrphans(ctx)
		if err != nil {
			return err
		}
		if len(orphans) > 0 {
			logger.Warn("media scan found non-library files",
				slog.Int("count", len(orphans)),
				slog.Any("files", orphans))
			return nil
		}
		logger.Info("media scan clean")
		return nil
	}
}

// NewAuditPruneHandler deletes activity entries older than the configured
// retention window. The HTTP API stays append-only; retention runs only here.
func NewAuditPruneHandler(store AuditStore, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AuditPrunePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.RetentionHours <= 0 {
			return asynq.SkipRetry
		}
		cutoff := time.Now().Add(-time.Duration(payload.RetentionHours) * time.Hour)
		removed, err := store.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		logger.Info("audit prune complete",
			slog.Int64("removed", removed),
			slog.Time("cutoff", cutoff))
		return nil
	}
}
