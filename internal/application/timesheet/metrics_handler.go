package timesheet

import (
	"context"

	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/domain/timesheet"
)

// MetricsRecorder receives tracker activity counts.
// telemetry.TrackerMetrics implements it.
type MetricsRecorder interface {
	RecordBillableChange(ctx context.Context, billable bool, rows int)
	RecordTimeLogsAppended(ctx context.Context, rows int, hours float64)
	RecordScreenshotUploaded(ctx context.Context, size int64)
	RecordScreenshotDeleted(ctx context.Context)
	RecordScreenshotsAttached(ctx context.Context, files int)
}

// MetricsHandler turns domain events into metric observations
type MetricsHandler struct {
	recorder MetricsRecorder
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(recorder MetricsRecorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// EventTypes returns the event types this handler is interested in
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		timesheet.EventTypeTimesheetBillableChanged,
		timesheet.EventTypeTimeLogsAppended,
		timesheet.EventTypeScreenshotsAttached,
		screenshot.EventTypeScreenshotUploaded,
		screenshot.EventTypeScreenshotDeleted,
	}
}

// Handle records the event. It never fails the publishing operation.
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *timesheet.TimesheetBillableChangedEvent:
		h.recorder.RecordBillableChange(ctx, e.Current.Bool(), e.RowCount)
	case *timesheet.TimeLogsAppendedEvent:
		h.recorder.RecordTimeLogsAppended(ctx, len(e.RowNames), e.Hours.InexactFloat64())
	case *timesheet.ScreenshotsAttachedEvent:
		h.recorder.RecordScreenshotsAttached(ctx, len(e.FileIDs))
	case *screenshot.ScreenshotUploadedEvent:
		h.recorder.RecordScreenshotUploaded(ctx, e.Size)
	case *screenshot.ScreenshotDeletedEvent:
		h.recorder.RecordScreenshotDeleted(ctx)
	}
	return nil
}

var _ shared.EventHandler = (*MetricsHandler)(nil)
