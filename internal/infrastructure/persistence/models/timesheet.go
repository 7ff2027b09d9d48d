package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/timetracker/backend/internal/domain/timesheet"
)

// TimesheetModel is the persistence model for the Timesheet aggregate root
type TimesheetModel struct {
	AggregateModel
	Name             string                 `gorm:"type:varchar(140);not null;uniqueIndex"`
	Employee         string                 `gorm:"type:varchar(140)"`
	ParentProject    string                 `gorm:"type:varchar(140);index:idx_timesheets_project_task,priority:1"`
	CustomTask       string                 `gorm:"type:varchar(140);index:idx_timesheets_project_task,priority:2"`
	DocStatus        timesheet.DocStatus    `gorm:"column:docstatus;type:smallint;not null;default:0"`
	CustomIsBillable timesheet.BillableFlag `gorm:"type:smallint;not null;default:0"`
	TimeLogs         []TimeLogModel         `gorm:"foreignKey:TimesheetID;references:ID"`
}

// TableName returns the table name for GORM
func (TimesheetModel) TableName() string {
	return "timesheets"
}

// ToDomain converts the persistence model to a domain Timesheet
func (m *TimesheetModel) ToDomain() *timesheet.Timesheet {
	t := &timesheet.Timesheet{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Employee:          m.Employee,
		ParentProject:     m.ParentProject,
		CustomTask:        m.CustomTask,
		DocStatus:         m.DocStatus,
		CustomIsBillable:  m.CustomIsBillable,
		TimeLogs:          make([]timesheet.TimeLog, len(m.TimeLogs)),
	}
	for i := range m.TimeLogs {
		t.TimeLogs[i] = m.TimeLogs[i].ToDomain()
	}
	return t
}

// FromDomain populates the persistence model from a domain Timesheet
func (m *TimesheetModel) FromDomain(t *timesheet.Timesheet) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.Employee = t.Employee
	m.ParentProject = t.ParentProject
	m.CustomTask = t.CustomTask
	m.DocStatus = t.DocStatus
	m.CustomIsBillable = t.CustomIsBillable
	m.TimeLogs = make([]TimeLogModel, len(t.TimeLogs))
	for i := range t.TimeLogs {
		m.TimeLogs[i].FromDomain(&t.TimeLogs[i])
		m.TimeLogs[i].TimesheetID = t.ID
	}
}

// TimesheetModelFromDomain creates a new persistence model from a domain Timesheet
func TimesheetModelFromDomain(t *timesheet.Timesheet) *TimesheetModel {
	m := &TimesheetModel{}
	m.FromDomain(t)
	return m
}

// TimeLogModel is the persistence model for a Timesheet Detail row
type TimeLogModel struct {
	ID           uuid.UUID              `gorm:"type:uuid;primary_key"`
	TimesheetID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	Name         string                 `gorm:"type:varchar(140);not null;uniqueIndex"`
	Idx          int                    `gorm:"not null"`
	ActivityType string                 `gorm:"type:varchar(140)"`
	FromTime     time.Time              `gorm:"not null"`
	ToTime       time.Time              `gorm:"not null"`
	Hours        decimal.Decimal        `gorm:"type:decimal(18,6);not null;default:0"`
	Task         string                 `gorm:"type:varchar(140)"`
	Project      string                 `gorm:"type:varchar(140)"`
	Completed    bool                   `gorm:"not null;default:false"`
	IsBillable   timesheet.BillableFlag `gorm:"type:smallint;not null;default:0"`
	CreatedAt    time.Time              `gorm:"not null"`
	UpdatedAt    time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TimeLogModel) TableName() string {
	return "timesheet_details"
}

// ToDomain converts the persistence model to a domain TimeLog
func (m *TimeLogModel) ToDomain() timesheet.TimeLog {
	return timesheet.TimeLog{
		ID:           m.ID,
		TimesheetID:  m.TimesheetID,
		Name:         m.Name,
		Idx:          m.Idx,
		ActivityType: m.ActivityType,
		FromTime:     m.FromTime,
		ToTime:       m.ToTime,
		Hours:        m.Hours,
		Task:         m.Task,
		Project:      m.Project,
		Completed:    m.Completed,
		IsBillable:   m.IsBillable,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain TimeLog
func (m *TimeLogModel) FromDomain(l *timesheet.TimeLog) {
	m.ID = l.ID
	m.TimesheetID = l.TimesheetID
	m.Name = l.Name
	m.Idx = l.Idx
	m.ActivityType = l.ActivityType
	m.FromTime = l.FromTime
	m.ToTime = l.ToTime
	m.Hours = l.Hours
	m.Task = l.Task
	m.Project = l.Project
	m.Completed = l.Completed
	m.IsBillable = l.IsBillable
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}
