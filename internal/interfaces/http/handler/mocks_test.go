package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/timetracker/backend/internal/application/identity"
	projectapp "github.com/timetracker/backend/internal/application/project"
	screenshotapp "github.com/timetracker/backend/internal/application/screenshot"
	timesheetapp "github.com/timetracker/backend/internal/application/timesheet"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) ListOpenProjects(ctx context.Context) ([]projectapp.ProjectResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projectapp.ProjectResponse), args.Error(1)
}

func (m *MockProjectService) ListActiveTasks(ctx context.Context, projectName string) ([]projectapp.TaskResponse, error) {
	args := m.Called(ctx, projectName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projectapp.TaskResponse), args.Error(1)
}

type MockTimesheetService struct {
	mock.Mock
}

func (m *MockTimesheetService) ListDrafts(ctx context.Context, projectName, task string) ([]timesheetapp.TimesheetSummary, error) {
	args := m.Called(ctx, projectName, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]timesheetapp.TimesheetSummary), args.Error(1)
}

func (m *MockTimesheetService) Get(ctx context.Context, name string) (*timesheetapp.TimesheetResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timesheetapp.TimesheetResponse), args.Error(1)
}

func (m *MockTimesheetService) SetBillable(ctx context.Context, name string, value any) (*timesheetapp.TimesheetResponse, error) {
	args := m.Called(ctx, name, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timesheetapp.TimesheetResponse), args.Error(1)
}

func (m *MockTimesheetService) Finalize(ctx context.Context, in timesheetapp.FinalizeInput) (*timesheetapp.FinalizeResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timesheetapp.FinalizeResult), args.Error(1)
}

func (m *MockTimesheetService) ReceiveDesktopPayload(ctx context.Context, payload map[string]any) timesheetapp.PayloadReceipt {
	args := m.Called(ctx, payload)
	return args.Get(0).(timesheetapp.PayloadReceipt)
}

type MockScreenshotService struct {
	mock.Mock
}

func (m *MockScreenshotService) Upload(ctx context.Context, in screenshotapp.UploadInput) (*screenshotapp.UploadResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*screenshotapp.UploadResult), args.Error(1)
}

func (m *MockScreenshotService) ListSession(ctx context.Context, sessionID string) ([]screenshotapp.FileResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]screenshotapp.FileResponse), args.Error(1)
}

func (m *MockScreenshotService) CleanupSession(ctx context.Context, sessionID string) (*screenshotapp.CleanupResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*screenshotapp.CleanupResult), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueToken(ctx context.Context, input identity.TokenInput) (*identity.TokenResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.TokenResult), args.Error(1)
}

func (m *MockTokenService) Revoke(ctx context.Context, jti string, remaining time.Duration) (*identity.RevokeResult, error) {
	args := m.Called(ctx, jti, remaining)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.RevokeResult), args.Error(1)
}

var (
	_ ProjectService    = (*MockProjectService)(nil)
	_ TimesheetService  = (*MockTimesheetService)(nil)
	_ ScreenshotService = (*MockScreenshotService)(nil)
	_ TokenService      = (*MockTokenService)(nil)
)
