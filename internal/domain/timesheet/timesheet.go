package timesheet

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/timetracker/backend/internal/domain/form"
	"github.com/timetracker/backend/internal/domain/shared"
)

// Document types and field names as the desk client knows them
const (
	DocTypeTimesheet = "Timesheet"
	DocTypeTimeLog   = "Timesheet Detail"

	FieldCustomIsBillable = "custom_is_billable"
	FieldIsBillable       = "is_billable"
	FieldCompleted        = "completed"
)

// DocStatus is the submission state of a timesheet
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// IsValid checks if the status is known
func (s DocStatus) IsValid() bool {
	return s >= DocStatusDraft && s <= DocStatusCancelled
}

// String returns the status label
func (s DocStatus) String() string {
	switch s {
	case DocStatusDraft:
		return "Draft"
	case DocStatusSubmitted:
		return "Submitted"
	case DocStatusCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("DocStatus(%d)", int(s))
	}
}

// Timesheet is a set of time log rows recorded against one project task
type Timesheet struct {
	shared.BaseAggregateRoot
	Name             string
	Employee         string
	ParentProject    string
	CustomTask       string
	DocStatus        DocStatus
	CustomIsBillable BillableFlag
	TimeLogs         []TimeLog
}

// TimeLog is one worked interval inside a timesheet
type TimeLog struct {
	ID           uuid.UUID
	TimesheetID  uuid.UUID
	Name         string
	Idx          int
	ActivityType string
	FromTime     time.Time
	ToTime       time.Time
	Hours        decimal.Decimal
	Task         string
	Project      string
	Completed    bool
	IsBillable   BillableFlag
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DocType returns the child document type
func (l *TimeLog) DocType() string {
	return DocTypeTimeLog
}

// TimeLogInput carries the values of a row to append
type TimeLogInput struct {
	ActivityType string
	FromTime     time.Time
	ToTime       time.Time
	Task         string
	Project      string
	Completed    bool
}

var _ form.Document = (*Timesheet)(nil)

// NewTimesheet creates a draft timesheet
func NewTimesheet(name, project, task string, billable BillableFlag) (*Timesheet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Timesheet name cannot be empty")
	}
	if len(name) > 140 {
		return nil, shared.NewDomainError("INVALID_NAME", "Timesheet name cannot exceed 140 characters")
	}

	return &Timesheet{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ParentProject:     project,
		CustomTask:        task,
		DocStatus:         DocStatusDraft,
		CustomIsBillable:  billable,
		TimeLogs:          make([]TimeLog, 0),
	}, nil
}

// DocType returns the parent document type
func (t *Timesheet) DocType() string {
	return DocTypeTimesheet
}

// DocName returns the document name
func (t *Timesheet) DocName() string {
	return t.Name
}

// IsDraft reports whether the timesheet can still be edited
func (t *Timesheet) IsDraft() bool {
	return t.DocStatus == DocStatusDraft
}

// SetField applies an edit to the timesheet or one of its time logs
func (t *Timesheet) SetField(recordType, recordID, field string, value any) (bool, error) {
	if !t.IsDraft() {
		return false, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Timesheet %s is %s and cannot be edited", t.Name, t.DocStatus))
	}

	switch recordType {
	case DocTypeTimesheet:
		if recordID != t.Name {
			return false, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("%s %s not found", recordType, recordID))
		}
		switch field {
		case FieldCustomIsBillable:
			return t.SetCustomIsBillable(ParseBillable(value))
		}
	case DocTypeTimeLog:
		row := t.TimeLog(recordID)
		if row == nil {
			return false, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("%s %s not found in %s", recordType, recordID, t.Name))
		}
		switch field {
		case FieldIsBillable:
			next := ParseBillable(value)
			if row.IsBillable == next {
				return false, nil
			}
			row.IsBillable = next
			row.UpdatedAt = time.Now()
			t.Touch()
			return true, nil
		case FieldCompleted:
			next := parseFlag(value)
			if row.Completed == next {
				return false, nil
			}
			row.Completed = next
			row.UpdatedAt = time.Now()
			t.Touch()
			return true, nil
		}
	default:
		return false, shared.NewDomainError("UNKNOWN_DOCTYPE",
			fmt.Sprintf("%s is not part of a Timesheet", recordType))
	}

	return false, shared.NewDomainError("UNKNOWN_FIELD",
		fmt.Sprintf("%s has no editable field %s", recordType, field))
}

// SetCustomIsBillable changes the timesheet-level billable flag.
// It does not touch the time logs; that is the job of the change handler.
func (t *Timesheet) SetCustomIsBillable(flag BillableFlag) (bool, error) {
	if !t.IsDraft() {
		return false, shared.ErrInvalidState
	}
	if t.CustomIsBillable == flag {
		return false, nil
	}
	previous := t.CustomIsBillable
	t.CustomIsBillable = flag
	t.Touch()
	t.AddDomainEvent(NewTimesheetBillableChangedEvent(t, previous))
	return true, nil
}

// TimeLog returns the row with the given name, or nil
func (t *Timesheet) TimeLog(name string) *TimeLog {
	for i := range t.TimeLogs {
		if t.TimeLogs[i].Name == name {
			return &t.TimeLogs[i]
		}
	}
	return nil
}

// AppendTimeLogs adds rows to the end of time_logs. New rows take the
// timesheet's billable flag.
func (t *Timesheet) AppendTimeLogs(inputs []TimeLogInput) ([]TimeLog, error) {
	if !t.IsDraft() {
		return nil, shared.ErrInvalidState
	}
	if len(inputs) == 0 {
		return nil, nil
	}

	for _, in := range inputs {
		if in.FromTime.IsZero() || in.ToTime.IsZero() {
			return nil, shared.NewDomainError("INVALID_INTERVAL", "Time log needs both from and to times")
		}
		if in.ToTime.Before(in.FromTime) {
			return nil, shared.NewDomainError("INVALID_INTERVAL", "Time log cannot end before it starts")
		}
	}

	now := time.Now()
	added := make([]TimeLog, 0, len(inputs))
	for _, in := range inputs {
		row := TimeLog{
			ID:           uuid.New(),
			TimesheetID:  t.ID,
			Name:         newRowName(),
			Idx:          len(t.TimeLogs) + 1,
			ActivityType: in.ActivityType,
			FromTime:     in.FromTime,
			ToTime:       in.ToTime,
			Hours:        HoursBetween(in.FromTime, in.ToTime),
			Task:         in.Task,
			Project:      in.Project,
			Completed:    in.Completed,
			IsBillable:   t.CustomIsBillable,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		t.TimeLogs = append(t.TimeLogs, row)
		added = append(added, row)
	}

	t.Touch()
	t.AddDomainEvent(NewTimeLogsAppendedEvent(t, added))
	return added, nil
}

// RecordScreenshotsAttached records that session screenshots now belong
// to this timesheet.
func (t *Timesheet) RecordScreenshotsAttached(sessionID string, fileIDs []uuid.UUID) {
	if len(fileIDs) == 0 {
		return
	}
	t.AddDomainEvent(NewScreenshotsAttachedEvent(t, sessionID, fileIDs))
}

// TotalHours sums the hours of every time log
func (t *Timesheet) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.TimeLogs {
		total = total.Add(l.Hours)
	}
	return total
}

// BillableHours sums the hours of billable time logs
func (t *Timesheet) BillableHours() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.TimeLogs {
		if l.IsBillable.Bool() {
			total = total.Add(l.Hours)
		}
	}
	return total
}

// HoursBetween returns the duration between from and to in hours,
// rounded to six decimal places.
func HoursBetween(from, to time.Time) decimal.Decimal {
	seconds := decimal.NewFromFloat(to.Sub(from).Seconds())
	return seconds.Div(decimal.NewFromInt(3600)).Round(6)
}

func newRowName() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	}
	return hex.EncodeToString(b)
}
