package project

import (
	"context"
	"time"

	"github.com/timetracker/backend/internal/domain/project"
	"github.com/timetracker/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Cache stores lookup results for a short time
type Cache interface {
	// Get loads key into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

const (
	projectsCacheKey    = "projects:open"
	tasksCacheKeyPrefix = "projects:tasks:"
)

// ProjectResponse is a project in the lookup list
type ProjectResponse struct {
	Name        string `json:"name"`
	ProjectName string `json:"project_name"`
}

// TaskResponse is a task in the lookup list
type TaskResponse struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

// Service serves project and task lookups for the desktop client
type Service struct {
	reader project.Reader
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewService creates a project lookup service. cache may be nil.
func NewService(reader project.Reader, cache Cache, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		reader: reader,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// ListOpenProjects returns projects whose status is Open
func (s *Service) ListOpenProjects(ctx context.Context) ([]ProjectResponse, error) {
	var cached []ProjectResponse
	if s.fromCache(ctx, projectsCacheKey, &cached) {
		return cached, nil
	}

	projects, err := s.reader.FindOpenProjects(ctx)
	if err != nil {
		s.log(ctx).Error("error fetching projects", zap.Error(err))
		return nil, err
	}

	out := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = ProjectResponse{Name: p.Name, ProjectName: p.ProjectName}
	}
	s.toCache(ctx, projectsCacheKey, out)
	return out, nil
}

// ListActiveTasks returns the tasks of a project that are still open for work
func (s *Service) ListActiveTasks(ctx context.Context, projectName string) ([]TaskResponse, error) {
	key := tasksCacheKeyPrefix + projectName
	var cached []TaskResponse
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	tasks, err := s.reader.FindActiveTasks(ctx, projectName)
	if err != nil {
		s.log(ctx).Error("error fetching tasks", zap.String("project", projectName), zap.Error(err))
		return nil, err
	}

	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		if t.Status.IsClosed() {
			continue
		}
		out = append(out, TaskResponse{Name: t.Name, Subject: t.Subject})
	}
	s.toCache(ctx, key, out)
	return out, nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil || s.ttl <= 0 {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log(ctx).Warn("lookup cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log(ctx).Warn("lookup cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// log returns the request logger carried by ctx, falling back to the
// service logger outside a request.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.ForContext(ctx, s.logger)
}
