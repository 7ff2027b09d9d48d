package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFileRepository implements screenshot.Repository using GORM
type GormFileRepository struct {
	db *gorm.DB
}

// NewGormFileRepository creates a new GormFileRepository
func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

// Save creates or updates a file record
func (r *GormFileRepository) Save(ctx context.Context, f *screenshot.File) error {
	return r.db.WithContext(ctx).Save(models.FileModelFromDomain(f)).Error
}

// SaveBatch creates or updates multiple file records in one transaction
func (r *GormFileRepository) SaveBatch(ctx context.Context, files []*screenshot.File) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range files {
			if err := tx.Save(models.FileModelFromDomain(f)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindBySession lists the files of a session, oldest first
func (r *GormFileRepository) FindBySession(ctx context.Context, sessionID string) ([]*screenshot.File, error) {
	var rows []models.FileModel
	if err := r.db.WithContext(ctx).
		Where("custom_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	files := make([]*screenshot.File, len(rows))
	for i := range rows {
		files[i] = rows[i].ToDomain()
	}
	return files, nil
}

// Delete permanently deletes a file record
func (r *GormFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FileModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ screenshot.Repository = (*GormFileRepository)(nil)
