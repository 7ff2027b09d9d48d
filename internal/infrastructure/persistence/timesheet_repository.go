package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/domain/timesheet"
	"github.com/timetracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTimesheetRepository implements timesheet.Repository using GORM
type GormTimesheetRepository struct {
	db *gorm.DB
}

// NewGormTimesheetRepository creates a new GormTimesheetRepository
func NewGormTimesheetRepository(db *gorm.DB) *GormTimesheetRepository {
	return &GormTimesheetRepository{db: db}
}

// FindByName finds a timesheet and its time logs, in row order
func (r *GormTimesheetRepository) FindByName(ctx context.Context, name string) (*timesheet.Timesheet, error) {
	var model models.TimesheetModel
	if err := r.db.WithContext(ctx).
		Preload("TimeLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("idx ASC")
		}).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDrafts lists draft timesheets of a project task, newest first.
// Time logs are not loaded.
func (r *GormTimesheetRepository) FindDrafts(ctx context.Context, project, task string) ([]timesheet.Timesheet, error) {
	var rows []models.TimesheetModel
	if err := r.db.WithContext(ctx).
		Where("docstatus = ? AND parent_project = ? AND custom_task = ?", timesheet.DocStatusDraft, project, task).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	sheets := make([]timesheet.Timesheet, len(rows))
	for i := range rows {
		sheets[i] = *rows[i].ToDomain()
	}
	return sheets, nil
}

// Save inserts a new timesheet, or updates an existing one when its version
// still matches the stored one. Time logs are synced to the in-memory rows.
// On success the aggregate carries the new version.
func (r *GormTimesheetRepository) Save(ctx context.Context, t *timesheet.Timesheet) error {
	model := models.TimesheetModelFromDomain(t)
	now := time.Now()
	var newVersion int
	var updated bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []int
		if err := tx.Model(&models.TimesheetModel{}).
			Where("id = ?", t.ID).
			Pluck("version", &current).Error; err != nil {
			return err
		}

		if len(current) == 0 {
			newVersion = t.Version
			if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
				return err
			}
			return r.syncTimeLogs(tx, t.ID, model.TimeLogs)
		}

		if current[0] != t.Version {
			return shared.ErrConcurrencyConflict
		}
		newVersion = current[0] + 1

		result := tx.Model(&models.TimesheetModel{}).
			Where("id = ? AND version = ?", t.ID, current[0]).
			Updates(map[string]interface{}{
				"name":               model.Name,
				"employee":           model.Employee,
				"parent_project":     model.ParentProject,
				"custom_task":        model.CustomTask,
				"docstatus":          model.DocStatus,
				"custom_is_billable": model.CustomIsBillable,
				"version":            newVersion,
				"updated_at":         now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		updated = true
		return r.syncTimeLogs(tx, t.ID, model.TimeLogs)
	})
	if err != nil {
		return err
	}

	t.Version = newVersion
	if updated {
		t.UpdatedAt = now
	}
	return nil
}

// syncTimeLogs deletes stored rows missing from logs and upserts the rest
func (r *GormTimesheetRepository) syncTimeLogs(tx *gorm.DB, timesheetID uuid.UUID, logs []models.TimeLogModel) error {
	query := tx.Where("timesheet_id = ?", timesheetID)
	if len(logs) > 0 {
		ids := make([]uuid.UUID, len(logs))
		for i := range logs {
			ids[i] = logs[i].ID
		}
		query = query.Where("id NOT IN ?", ids)
	}
	if err := query.Delete(&models.TimeLogModel{}).Error; err != nil {
		return err
	}

	for i := range logs {
		logs[i].TimesheetID = timesheetID
		if err := tx.Save(&logs[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ timesheet.Repository = (*GormTimesheetRepository)(nil)
