package timesheet

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/timetracker/backend/internal/domain/project"
	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/domain/timesheet"
)

// MockTimesheetRepository is a mock implementation of timesheet.Repository
type MockTimesheetRepository struct {
	mock.Mock
}

func (m *MockTimesheetRepository) FindByName(ctx context.Context, name string) (*timesheet.Timesheet, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timesheet.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindDrafts(ctx context.Context, projectName, task string) ([]timesheet.Timesheet, error) {
	args := m.Called(ctx, projectName, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]timesheet.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) Save(ctx context.Context, t *timesheet.Timesheet) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockActivityTypeRepository is a mock implementation of project.ActivityTypeRepository
type MockActivityTypeRepository struct {
	mock.Mock
}

func (m *MockActivityTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityTypeRepository) Create(ctx context.Context, at *project.ActivityType) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}

// MockScreenshotRepository is a mock implementation of screenshot.Repository
type MockScreenshotRepository struct {
	mock.Mock
}

func (m *MockScreenshotRepository) Save(ctx context.Context, f *screenshot.File) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockScreenshotRepository) SaveBatch(ctx context.Context, files []*screenshot.File) error {
	args := m.Called(ctx, files)
	return args.Error(0)
}

func (m *MockScreenshotRepository) FindBySession(ctx context.Context, sessionID string) ([]*screenshot.File, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*screenshot.File), args.Error(1)
}

func (m *MockScreenshotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
