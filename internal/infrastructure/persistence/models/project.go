package models

import (
	"github.com/timetracker/backend/internal/domain/project"
)

// ProjectModel is the persistence model for an ERP project
type ProjectModel struct {
	BaseModel
	Name        string                `gorm:"type:varchar(140);not null;uniqueIndex"`
	ProjectName string                `gorm:"type:varchar(255)"`
	Status      project.ProjectStatus `gorm:"type:varchar(20);not null;default:'Open';index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project
func (m *ProjectModel) ToDomain() project.Project {
	return project.Project{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		ProjectName: m.ProjectName,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Project
func (m *ProjectModel) FromDomain(p *project.Project) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.ProjectName = p.ProjectName
	m.Status = p.Status
}

// TaskModel is the persistence model for a project task
type TaskModel struct {
	BaseModel
	Name    string             `gorm:"type:varchar(140);not null;uniqueIndex"`
	Subject string             `gorm:"type:varchar(255)"`
	Project string             `gorm:"type:varchar(140);not null;index"`
	Status  project.TaskStatus `gorm:"type:varchar(20);not null;default:'Open'"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task
func (m *TaskModel) ToDomain() project.Task {
	return project.Task{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Subject:    m.Subject,
		Project:    m.Project,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Task
func (m *TaskModel) FromDomain(t *project.Task) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Subject = t.Subject
	m.Project = t.Project
	m.Status = t.Status
}

// ActivityTypeModel is the persistence model for an activity type
type ActivityTypeModel struct {
	BaseModel
	Name string `gorm:"type:varchar(140);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ActivityTypeModel) TableName() string {
	return "activity_types"
}

// ToDomain converts the persistence model to a domain ActivityType
func (m *ActivityTypeModel) ToDomain() *project.ActivityType {
	return &project.ActivityType{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// ActivityTypeModelFromDomain creates a persistence model from a domain ActivityType
func ActivityTypeModelFromDomain(at *project.ActivityType) *ActivityTypeModel {
	m := &ActivityTypeModel{Name: at.Name}
	m.FromDomainBaseEntity(at.BaseEntity)
	return m
}
