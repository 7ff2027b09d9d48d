package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/timetracker/backend/internal/domain/timesheet"
)

// TimesheetSummary is a row of the draft timesheet lookup
type TimesheetSummary struct {
	Name string `json:"name"`
}

// TimeLogResponse is a time log row
type TimeLogResponse struct {
	Name         string                 `json:"name"`
	Idx          int                    `json:"idx"`
	ActivityType string                 `json:"activity_type"`
	FromTime     time.Time              `json:"from_time"`
	ToTime       time.Time              `json:"to_time"`
	Hours        decimal.Decimal        `json:"hours"`
	Task         string                 `json:"task"`
	Project      string                 `json:"project"`
	Completed    int                    `json:"completed"`
	IsBillable   timesheet.BillableFlag `json:"is_billable"`
}

// TimesheetResponse is a timesheet with its time logs
type TimesheetResponse struct {
	Name             string                 `json:"name"`
	Employee         string                 `json:"employee,omitempty"`
	ParentProject    string                 `json:"parent_project"`
	CustomTask       string                 `json:"custom_task"`
	DocStatus        int                    `json:"docstatus"`
	CustomIsBillable timesheet.BillableFlag `json:"custom_is_billable"`
	TotalHours       decimal.Decimal        `json:"total_hours"`
	BillableHours    decimal.Decimal        `json:"total_billable_hours"`
	TimeLogs         []TimeLogResponse      `json:"time_logs"`
	Version          int                    `json:"version"`
	ModifiedAt       time.Time              `json:"modified"`
}

// ToTimesheetResponse converts a timesheet to its response form
func ToTimesheetResponse(t *timesheet.Timesheet) TimesheetResponse {
	logs := make([]TimeLogResponse, len(t.TimeLogs))
	for i, l := range t.TimeLogs {
		completed := 0
		if l.Completed {
			completed = 1
		}
		logs[i] = TimeLogResponse{
			Name:         l.Name,
			Idx:          l.Idx,
			ActivityType: l.ActivityType,
			FromTime:     l.FromTime,
			ToTime:       l.ToTime,
			Hours:        l.Hours,
			Task:         l.Task,
			Project:      l.Project,
			Completed:    completed,
			IsBillable:   l.IsBillable,
		}
	}
	return TimesheetResponse{
		Name:             t.Name,
		Employee:         t.Employee,
		ParentProject:    t.ParentProject,
		CustomTask:       t.CustomTask,
		DocStatus:        int(t.DocStatus),
		CustomIsBillable: t.CustomIsBillable,
		TotalHours:       t.TotalHours(),
		BillableHours:    t.BillableHours(),
		TimeLogs:         logs,
		Version:          t.Version,
		ModifiedAt:       t.UpdatedAt,
	}
}

// Interval is one tracked interval sent by the desktop client
type Interval struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Completed *bool  `json:"completed,omitempty"`
}

// FinalizeInput is the finalize payload of the desktop client
type FinalizeInput struct {
	TimesheetName string     `json:"timesheet_name"`
	TaskName      string     `json:"task_name"`
	ProjectName   string     `json:"project_name"`
	ActivityName  string     `json:"activity_name"`
	Intervals     []Interval `json:"intervals"`
	SessionID     string     `json:"session_id"`
}

// FinalizeResult reports what finalize changed
type FinalizeResult struct {
	Status       string `json:"status"`
	RowsAdded    int    `json:"rows_added"`
	TimesheetURL string `json:"timesheet_url"`
}

// PayloadReceipt acknowledges a desktop payload
type PayloadReceipt struct {
	Status   string `json:"status"`
	Received bool   `json:"received"`
}
