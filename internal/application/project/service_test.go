package project

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/domain/project"
	"go.uber.org/zap"
)

// MockProjectReader is a mock implementation of project.Reader
type MockProjectReader struct {
	mock.Mock
}

func (m *MockProjectReader) FindOpenProjects(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectReader) FindActiveTasks(ctx context.Context, projectName string) ([]project.Task, error) {
	args := m.Called(ctx, projectName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Task), args.Error(1)
}

// mapCache is a JSON round-tripping cache for tests
type mapCache struct {
	data   map[string][]byte
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func TestService_ListOpenProjects_Cached(t *testing.T) {
	ctx := context.Background()
	reader := new(MockProjectReader)
	reader.On("FindOpenProjects", ctx).Return([]project.Project{
		{Name: "PROJ-0001", ProjectName: "Website"},
	}, nil).Once()

	svc := NewService(reader, newMapCache(), time.Minute, zap.NewNop())

	first, err := svc.ListOpenProjects(ctx)
	require.NoError(t, err)
	second, err := svc.ListOpenProjects(ctx)
	require.NoError(t, err)

	assert.Equal(t, []ProjectResponse{{Name: "PROJ-0001", ProjectName: "Website"}}, first)
	assert.Equal(t, first, second)
	reader.AssertNumberOfCalls(t, "FindOpenProjects", 1)
}

func TestService_ListOpenProjects_CacheErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	reader := new(MockProjectReader)
	reader.On("FindOpenProjects", ctx).Return([]project.Project{}, nil)

	cache := newMapCache()
	cache.getErr = errors.New("redis down")
	svc := NewService(reader, cache, time.Minute, zap.NewNop())

	got, err := svc.ListOpenProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_ListActiveTasks(t *testing.T) {
	ctx := context.Background()
	reader := new(MockProjectReader)
	reader.On("FindActiveTasks", ctx, "PROJ-0001").Return([]project.Task{
		{Name: "TASK-1", Subject: "Design", Status: project.TaskStatusOpen},
		{Name: "TASK-2", Subject: "Ship", Status: project.TaskStatusCompleted},
	}, nil)

	svc := NewService(reader, nil, 0, zap.NewNop())

	got, err := svc.ListActiveTasks(ctx, "PROJ-0001")
	require.NoError(t, err)
	assert.Equal(t, []TaskResponse{{Name: "TASK-1", Subject: "Design"}}, got)
}

func TestService_ListActiveTasks_Error(t *testing.T) {
	ctx := context.Background()
	reader := new(MockProjectReader)
	reader.On("FindActiveTasks", ctx, "P").Return(nil, errors.New("db down"))

	svc := NewService(reader, newMapCache(), time.Minute, zap.NewNop())
	_, err := svc.ListActiveTasks(ctx, "P")
	require.Error(t, err)
}
