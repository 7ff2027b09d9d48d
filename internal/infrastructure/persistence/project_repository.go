package persistence

import (
	"context"

	"github.com/timetracker/backend/internal/domain/project"
	"github.com/timetracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProjectRepository implements project.Reader using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindOpenProjects lists projects with status Open, by name
func (r *GormProjectRepository) FindOpenProjects(ctx context.Context) ([]project.Project, error) {
	var rows []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", project.ProjectStatusOpen).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	projects := make([]project.Project, len(rows))
	for i := range rows {
		projects[i] = rows[i].ToDomain()
	}
	return projects, nil
}

// FindActiveTasks lists the tasks of a project that are neither completed nor cancelled
func (r *GormProjectRepository) FindActiveTasks(ctx context.Context, projectName string) ([]project.Task, error) {
	var rows []models.TaskModel
	if err := r.db.WithContext(ctx).
		Where("project = ? AND status NOT IN ?", projectName,
			[]project.TaskStatus{project.TaskStatusCompleted, project.TaskStatusCancelled}).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	tasks := make([]project.Task, len(rows))
	for i := range rows {
		tasks[i] = rows[i].ToDomain()
	}
	return tasks, nil
}

var _ project.Reader = (*GormProjectRepository)(nil)

// GormActivityTypeRepository implements project.ActivityTypeRepository using GORM
type GormActivityTypeRepository struct {
	db *gorm.DB
}

// NewGormActivityTypeRepository creates a new GormActivityTypeRepository
func NewGormActivityTypeRepository(db *gorm.DB) *GormActivityTypeRepository {
	return &GormActivityTypeRepository{db: db}
}

// ExistsByName checks whether an activity type exists
func (r *GormActivityTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivityTypeModel{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts an activity type
func (r *GormActivityTypeRepository) Create(ctx context.Context, at *project.ActivityType) error {
	return r.db.WithContext(ctx).Create(models.ActivityTypeModelFromDomain(at)).Error
}

var _ project.ActivityTypeRepository = (*GormActivityTypeRepository)(nil)
