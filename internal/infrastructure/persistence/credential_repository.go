package persistence

import (
	"context"
	"errors"

	"github.com/timetracker/backend/internal/domain/identity"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAPICredentialRepository implements identity.APICredentialRepository using GORM
type GormAPICredentialRepository struct {
	db *gorm.DB
}

// NewGormAPICredentialRepository creates a new GormAPICredentialRepository
func NewGormAPICredentialRepository(db *gorm.DB) *GormAPICredentialRepository {
	return &GormAPICredentialRepository{db: db}
}

// FindByAPIKey finds a credential by its public key
func (r *GormAPICredentialRepository) FindByAPIKey(ctx context.Context, apiKey string) (*identity.APICredential, error) {
	var model models.APICredentialModel
	if err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a credential
func (r *GormAPICredentialRepository) Save(ctx context.Context, cred *identity.APICredential) error {
	return r.db.WithContext(ctx).Save(models.APICredentialModelFromDomain(cred)).Error
}

var _ identity.APICredentialRepository = (*GormAPICredentialRepository)(nil)
