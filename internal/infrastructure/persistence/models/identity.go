package models

import (
	"time"

	"github.com/timetracker/backend/internal/domain/identity"
)

// APICredentialModel is the persistence model for an API credential
type APICredentialModel struct {
	AggregateModel
	APIKey     string `gorm:"column:api_key;type:varchar(64);not null;uniqueIndex"`
	SecretHash string `gorm:"type:varchar(255);not null"`
	User       string `gorm:"column:user_name;type:varchar(140);not null;index"`
	Enabled    bool   `gorm:"not null"`
	LastUsedAt *time.Time
}

// TableName returns the table name for GORM
func (APICredentialModel) TableName() string {
	return "api_credentials"
}

// ToDomain converts the persistence model to a domain APICredential
func (m *APICredentialModel) ToDomain() *identity.APICredential {
	return &identity.APICredential{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		APIKey:            m.APIKey,
		SecretHash:        m.SecretHash,
		User:              m.User,
		Enabled:           m.Enabled,
		LastUsedAt:        m.LastUsedAt,
	}
}

// APICredentialModelFromDomain creates a new persistence model from a domain APICredential
func APICredentialModelFromDomain(c *identity.APICredential) *APICredentialModel {
	m := &APICredentialModel{
		APIKey:     c.APIKey,
		SecretHash: c.SecretHash,
		User:       c.User,
		Enabled:    c.Enabled,
		LastUsedAt: c.LastUsedAt,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
