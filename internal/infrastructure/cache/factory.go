package cache

import (
	"errors"

	"github.com/redis/go-redis/v9"
	projectapp "github.com/timetracker/backend/internal/application/project"
	"go.uber.org/zap"
)

// Factory picks the lookup cache backend
type Factory struct {
	client                *redis.Client
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether a missing Redis client falls back to memory.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a factory. client may be nil when Redis is disabled or unreachable.
func NewFactory(client *redis.Client, opts ...FactoryOption) *Factory {
	f := &Factory{
		client:                client,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis backed cache when a client is present, otherwise
// an in-memory cache if fallback is allowed.
func (f *Factory) Create() (projectapp.Cache, error) {
	if f.client != nil {
		f.logger.Info("using Redis lookup cache")
		return NewRedisCache(f.client, ""), nil
	}
	if !f.allowInMemoryFallback {
		return nil, errors.New("redis required for lookup cache but unavailable")
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory lookup cache. " +
		"Entries are not shared across instances.")
	return NewMemoryCache(), nil
}
