package timesheet

import (
	"context"

	"github.com/timetracker/backend/internal/domain/project"
	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/timesheet"
)

// TransactionScope runs a unit of work against repositories that share one
// database transaction. An error returned by fn rolls everything back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories finalize writes through.
// All of them are bound to the same transaction.
type TransactionalRepositories interface {
	TimesheetRepo() timesheet.Repository
	ActivityTypeRepo() project.ActivityTypeRepository
	FileRepo() screenshot.Repository
}

// NoOpTransactionScope hands out the given repositories without a
// transaction. Used by unit tests and when no database is involved.
type NoOpTransactionScope struct {
	timesheets timesheet.Repository
	activities project.ActivityTypeRepository
	files      screenshot.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	timesheets timesheet.Repository,
	activities project.ActivityTypeRepository,
	files screenshot.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		timesheets: timesheets,
		activities: activities,
		files:      files,
	}
}

// Execute calls fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) TimesheetRepo() timesheet.Repository {
	return s.timesheets
}

func (s *NoOpTransactionScope) ActivityTypeRepo() project.ActivityTypeRepository {
	return s.activities
}

func (s *NoOpTransactionScope) FileRepo() screenshot.Repository {
	return s.files
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
