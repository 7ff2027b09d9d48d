package models

import (
	"github.com/timetracker/backend/internal/domain/screenshot"
)

// FileModel is the persistence model for an uploaded screenshot file
type FileModel struct {
	AggregateModel
	FileName          string `gorm:"type:varchar(255);not null"`
	FileURL           string `gorm:"type:varchar(500);not null"`
	StorageKey        string `gorm:"type:varchar(500);not null;uniqueIndex"`
	ContentType       string `gorm:"type:varchar(100)"`
	Size              int64  `gorm:"not null;default:0"`
	IsPrivate         bool   `gorm:"not null"`
	SessionID         string `gorm:"column:custom_session_id;type:varchar(140);not null;index"`
	AttachedToDocType string `gorm:"type:varchar(140)"`
	AttachedToName    string `gorm:"type:varchar(140);index"`
}

// TableName returns the table name for GORM
func (FileModel) TableName() string {
	return "files"
}

// ToDomain converts the persistence model to a domain File
func (m *FileModel) ToDomain() *screenshot.File {
	return &screenshot.File{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FileName:          m.FileName,
		FileURL:           m.FileURL,
		StorageKey:        m.StorageKey,
		ContentType:       m.ContentType,
		Size:              m.Size,
		IsPrivate:         m.IsPrivate,
		SessionID:         m.SessionID,
		AttachedToDocType: m.AttachedToDocType,
		AttachedToName:    m.AttachedToName,
	}
}

// FromDomain populates the persistence model from a domain File
func (m *FileModel) FromDomain(f *screenshot.File) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.FileName = f.FileName
	m.FileURL = f.FileURL
	m.StorageKey = f.StorageKey
	m.ContentType = f.ContentType
	m.Size = f.Size
	m.IsPrivate = f.IsPrivate
	m.SessionID = f.SessionID
	m.AttachedToDocType = f.AttachedToDocType
	m.AttachedToName = f.AttachedToName
}

// FileModelFromDomain creates a new persistence model from a domain File
func FileModelFromDomain(f *screenshot.File) *FileModel {
	m := &FileModel{}
	m.FromDomain(f)
	return m
}
