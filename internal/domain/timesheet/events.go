package timesheet

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/timetracker/backend/internal/domain/shared"
)

// Aggregate type constant for Timesheet
const AggregateTypeTimesheet = "Timesheet"

// Event type constants for Timesheet
const (
	EventTypeTimesheetBillableChanged = "TimesheetBillableChanged"
	EventTypeTimeLogsAppended         = "TimeLogsAppended"
	EventTypeScreenshotsAttached      = "ScreenshotsAttached"
)

// TimesheetBillableChangedEvent is published when custom_is_billable changes
type TimesheetBillableChangedEvent struct {
	shared.BaseDomainEvent
	TimesheetName string       `json:"timesheet_name"`
	Previous      BillableFlag `json:"previous"`
	Current       BillableFlag `json:"current"`
	RowCount      int          `json:"row_count"`
}

// NewTimesheetBillableChangedEvent creates a new TimesheetBillableChangedEvent
func NewTimesheetBillableChangedEvent(t *Timesheet, previous BillableFlag) *TimesheetBillableChangedEvent {
	return &TimesheetBillableChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeTimesheetBillableChanged,
			AggregateTypeTimesheet,
			t.ID,
		),
		TimesheetName: t.Name,
		Previous:      previous,
		Current:       t.CustomIsBillable,
		RowCount:      len(t.TimeLogs),
	}
}

// TimeLogsAppendedEvent is published when rows are added to a timesheet
type TimeLogsAppendedEvent struct {
	shared.BaseDomainEvent
	TimesheetName string          `json:"timesheet_name"`
	RowNames      []string        `json:"row_names"`
	Hours         decimal.Decimal `json:"hours"`
}

// NewTimeLogsAppendedEvent creates a new TimeLogsAppendedEvent
func NewTimeLogsAppendedEvent(t *Timesheet, rows []TimeLog) *TimeLogsAppendedEvent {
	names := make([]string, len(rows))
	hours := decimal.Zero
	for i, r := range rows {
		names[i] = r.Name
		hours = hours.Add(r.Hours)
	}
	return &TimeLogsAppendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeTimeLogsAppended,
			AggregateTypeTimesheet,
			t.ID,
		),
		TimesheetName: t.Name,
		RowNames:      names,
		Hours:         hours,
	}
}

// ScreenshotsAttachedEvent is published when session screenshots are linked to a timesheet
type ScreenshotsAttachedEvent struct {
	shared.BaseDomainEvent
	TimesheetName string      `json:"timesheet_name"`
	SessionID     string      `json:"session_id"`
	FileIDs       []uuid.UUID `json:"file_ids"`
}

// NewScreenshotsAttachedEvent creates a new ScreenshotsAttachedEvent
func NewScreenshotsAttachedEvent(t *Timesheet, sessionID string, fileIDs []uuid.UUID) *ScreenshotsAttachedEvent {
	return &ScreenshotsAttachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeScreenshotsAttached,
			AggregateTypeTimesheet,
			t.ID,
		),
		TimesheetName: t.Name,
		SessionID:     sessionID,
		FileIDs:       fileIDs,
	}
}
