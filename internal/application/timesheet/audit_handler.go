package timesheet

import (
	"context"

	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/domain/timesheet"
	"go.uber.org/zap"
)

// AuditHandler writes an audit log line for every timesheet and screenshot event
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(logger *zap.Logger) *AuditHandler {
	return &AuditHandler{logger: logger.Named("audit")}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditHandler) EventTypes() []string {
	return []string{
		timesheet.EventTypeTimesheetBillableChanged,
		timesheet.EventTypeTimeLogsAppended,
		timesheet.EventTypeScreenshotsAttached,
		screenshot.EventTypeScreenshotUploaded,
		screenshot.EventTypeScreenshotDeleted,
	}
}

// Handle logs the event with its type-specific fields
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *timesheet.TimesheetBillableChangedEvent:
		fields = append(fields,
			zap.String("timesheet", e.TimesheetName),
			zap.Int("previous", e.Previous.Int()),
			zap.Int("current", e.Current.Int()),
			zap.Int("rows", e.RowCount),
		)
	case *timesheet.TimeLogsAppendedEvent:
		fields = append(fields,
			zap.String("timesheet", e.TimesheetName),
			zap.Strings("rows", e.RowNames),
			zap.String("hours", e.Hours.String()),
		)
	case *timesheet.ScreenshotsAttachedEvent:
		fields = append(fields,
			zap.String("timesheet", e.TimesheetName),
			zap.String("session_id", e.SessionID),
			zap.Int("files", len(e.FileIDs)),
		)
	case *screenshot.ScreenshotUploadedEvent:
		fields = append(fields,
			zap.String("session_id", e.SessionID),
			zap.String("storage_key", e.StorageKey),
			zap.Int64("size", e.Size),
		)
	case *screenshot.ScreenshotDeletedEvent:
		fields = append(fields,
			zap.String("session_id", e.SessionID),
			zap.String("storage_key", e.StorageKey),
		)
	}

	h.logger.Info("domain event", fields...)
	return nil
}

var _ shared.EventHandler = (*AuditHandler)(nil)
