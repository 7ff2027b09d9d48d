package project

import (
	"context"
	"strings"

	"github.com/timetracker/backend/internal/domain/shared"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusOpen      ProjectStatus = "Open"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusCancelled ProjectStatus = "Cancelled"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "Open"
	TaskStatusWorking   TaskStatus = "Working"
	TaskStatusOverdue   TaskStatus = "Overdue"
	TaskStatusCompleted TaskStatus = "Completed"
	TaskStatusCancelled TaskStatus = "Cancelled"
)

// IsClosed reports whether time can no longer be logged against the task
func (s TaskStatus) IsClosed() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// Project is an ERP project that time is tracked against
type Project struct {
	shared.BaseEntity
	Name        string
	ProjectName string
	Status      ProjectStatus
}

// Task is a unit of work inside a project
type Task struct {
	shared.BaseEntity
	Name    string
	Subject string
	Project string
	Status  TaskStatus
}

// ActivityType classifies time log rows
type ActivityType struct {
	shared.BaseEntity
	Name string
}

// NewActivityType creates an activity type
func NewActivityType(name string) (*ActivityType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_TYPE", "Activity type cannot be empty")
	}
	if len(name) > 140 {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_TYPE", "Activity type cannot exceed 140 characters")
	}
	return &ActivityType{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Reader loads projects and tasks
type Reader interface {
	// FindOpenProjects lists projects with status Open
	FindOpenProjects(ctx context.Context) ([]Project, error)

	// FindActiveTasks lists tasks of a project that are not completed or cancelled
	FindActiveTasks(ctx context.Context, project string) ([]Task, error)
}

// ActivityTypeRepository looks up and creates activity types
type ActivityTypeRepository interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, at *ActivityType) error
}
