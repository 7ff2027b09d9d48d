package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics recorder is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// TrackerMetrics records time tracker activity: billable toggles, appended
// time logs and screenshot traffic.
type TrackerMetrics struct {
	billableChangesTotal *Counter
	billableRowsTotal    *Counter
	timeLogsTotal        *Counter
	timeLogHours         *Histogram
	screenshotsUploaded  *Counter
	screenshotBytes      *Histogram
	screenshotsDeleted   *Counter
	screenshotsAttached  *Counter
}

// NewTrackerMetrics creates all tracker instruments on meter.
func NewTrackerMetrics(meter metric.Meter) (*TrackerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &TrackerMetrics{}
	var err error

	if m.billableChangesTotal, err = NewCounter(meter,
		"tracker_billable_changes_total",
		"Number of timesheet billable flag changes",
		"{changes}",
	); err != nil {
		return nil, err
	}
	if m.billableRowsTotal, err = NewCounter(meter,
		"tracker_billable_rows_updated_total",
		"Number of time log rows rewritten by billable propagation",
		"{rows}",
	); err != nil {
		return nil, err
	}
	if m.timeLogsTotal, err = NewCounter(meter,
		"tracker_time_logs_appended_total",
		"Number of time log rows appended to timesheets",
		"{rows}",
	); err != nil {
		return nil, err
	}
	if m.timeLogHours, err = NewHistogram(meter, HistogramOpts{
		Name:        "tracker_time_log_hours",
		Description: "Hours appended per finalize call",
		Unit:        "h",
		Boundaries:  HoursBuckets,
	}); err != nil {
		return nil, err
	}
	if m.screenshotsUploaded, err = NewCounter(meter,
		"tracker_screenshots_uploaded_total",
		"Number of screenshots uploaded",
		"{files}",
	); err != nil {
		return nil, err
	}
	if m.screenshotBytes, err = NewHistogram(meter, HistogramOpts{
		Name:        "tracker_screenshot_size_bytes",
		Description: "Uploaded screenshot size distribution in bytes",
		Unit:        "By",
		Boundaries:  SizeBuckets,
	}); err != nil {
		return nil, err
	}
	if m.screenshotsDeleted, err = NewCounter(meter,
		"tracker_screenshots_deleted_total",
		"Number of screenshots deleted",
		"{files}",
	); err != nil {
		return nil, err
	}
	if m.screenshotsAttached, err = NewCounter(meter,
		"tracker_screenshots_attached_total",
		"Number of screenshots attached to timesheets",
		"{files}",
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordBillableChange counts one billable toggle and the rows it rewrote.
func (m *TrackerMetrics) RecordBillableChange(ctx context.Context, billable bool, rows int) {
	m.billableChangesTotal.Inc(ctx, AttrBillable.Bool(billable))
	if rows > 0 {
		m.billableRowsTotal.Add(ctx, int64(rows), AttrBillable.Bool(billable))
	}
}

// RecordTimeLogsAppended counts appended rows and the hours they cover.
func (m *TrackerMetrics) RecordTimeLogsAppended(ctx context.Context, rows int, hours float64) {
	m.timeLogsTotal.Add(ctx, int64(rows))
	m.timeLogHours.Record(ctx, hours)
}

// RecordScreenshotUploaded counts an upload and its size.
func (m *TrackerMetrics) RecordScreenshotUploaded(ctx context.Context, size int64) {
	m.screenshotsUploaded.Inc(ctx)
	m.screenshotBytes.Record(ctx, float64(size))
}

// RecordScreenshotDeleted counts a deleted screenshot.
func (m *TrackerMetrics) RecordScreenshotDeleted(ctx context.Context) {
	m.screenshotsDeleted.Inc(ctx)
}

// RecordScreenshotsAttached counts screenshots linked to a timesheet.
func (m *TrackerMetrics) RecordScreenshotsAttached(ctx context.Context, files int) {
	m.screenshotsAttached.Add(ctx, int64(files))
}
