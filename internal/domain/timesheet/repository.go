package timesheet

import "context"

// Reader loads timesheets
type Reader interface {
	// FindByName finds a timesheet and its time logs by document name
	FindByName(ctx context.Context, name string) (*Timesheet, error)

	// FindDrafts lists draft timesheets for a project and task
	FindDrafts(ctx context.Context, project, task string) ([]Timesheet, error)
}

// Writer persists timesheets
type Writer interface {
	// Save creates a timesheet or updates it with an optimistic version check.
	// Time logs are replaced by the in-memory collection.
	Save(ctx context.Context, t *Timesheet) error
}

// Repository combines Reader and Writer
type Repository interface {
	Reader
	Writer
}
