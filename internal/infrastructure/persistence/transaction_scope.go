package persistence

import (
	"context"

	apptimesheet "github.com/timetracker/backend/internal/application/timesheet"
	"github.com/timetracker/backend/internal/domain/project"
	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/timesheet"
	"gorm.io/gorm"
)

// GormTransactionScope runs finalize's writes in one GORM transaction
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute commits when fn succeeds and rolls back when it returns an error
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptimesheet.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) TimesheetRepo() timesheet.Repository {
	return NewGormTimesheetRepository(r.tx)
}

func (r *gormTransactionalRepositories) ActivityTypeRepo() project.ActivityTypeRepository {
	return NewGormActivityTypeRepository(r.tx)
}

func (r *gormTransactionalRepositories) FileRepo() screenshot.Repository {
	return NewGormFileRepository(r.tx)
}

var (
	_ apptimesheet.TransactionScope          = (*GormTransactionScope)(nil)
	_ apptimesheet.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
