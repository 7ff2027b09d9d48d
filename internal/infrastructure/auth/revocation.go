package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList invalidates access tokens before they expire
type RevocationList interface {
	// Revoke rejects the token with this JWT ID for ttl
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether the token with this JWT ID was revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeAPIKey rejects every token issued for apiKey up to now
	RevokeAPIKey(ctx context.Context, apiKey string, ttl time.Duration) error

	// IsAPIKeyRevoked reports whether a token issued at issuedAt for apiKey
	// predates a key revocation
	IsAPIKeyRevoked(ctx context.Context, apiKey string, issuedAt time.Time) (bool, error)
}

// RedisRevocationList implements RevocationList using Redis
type RedisRevocationList struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRevocationList creates a revocation list on an existing Redis client
func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{
		client:    client,
		keyPrefix: "token:revoked:",
	}
}

func (l *RedisRevocationList) jtiKey(jti string) string {
	return l.keyPrefix + "jti:" + jti
}

func (l *RedisRevocationList) apiKeyKey(apiKey string) string {
	return l.keyPrefix + "key:" + apiKey
}

// Revoke stores the JWT ID with a TTL
func (l *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks the JWT ID
func (l *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := l.client.Exists(ctx, l.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return exists > 0, nil
}

// RevokeAPIKey stores the revocation time of an API key
func (l *RedisRevocationList) RevokeAPIKey(ctx context.Context, apiKey string, ttl time.Duration) error {
	now := time.Now().Unix()
	if err := l.client.Set(ctx, l.apiKeyKey(apiKey), now, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke api key tokens: %w", err)
	}
	return nil
}

// IsAPIKeyRevoked compares issuedAt with the stored revocation time
func (l *RedisRevocationList) IsAPIKeyRevoked(ctx context.Context, apiKey string, issuedAt time.Time) (bool, error) {
	raw, err := l.client.Get(ctx, l.apiKeyKey(apiKey)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check api key revocation: %w", err)
	}

	revokedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation timestamp: %w", err)
	}
	return issuedAt.Unix() <= revokedAt, nil
}

var _ RevocationList = (*RedisRevocationList)(nil)

// InMemoryRevocationList is a single-process RevocationList
type InMemoryRevocationList struct {
	mu        sync.Mutex
	jtis      map[string]time.Time // jti -> expiry
	revokedAt map[string]time.Time // api key -> revocation time
}

// NewInMemoryRevocationList creates an empty in-memory revocation list
func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{
		jtis:      make(map[string]time.Time),
		revokedAt: make(map[string]time.Time),
	}
}

// Revoke records the JWT ID until ttl elapses
func (l *InMemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jtis[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks the JWT ID and drops expired entries
func (l *InMemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiry, ok := l.jtis[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(l.jtis, jti)
		return false, nil
	}
	return true, nil
}

// RevokeAPIKey records the revocation time of an API key
func (l *InMemoryRevocationList) RevokeAPIKey(_ context.Context, apiKey string, _ time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revokedAt[apiKey] = time.Now()
	return nil
}

// IsAPIKeyRevoked compares issuedAt with the recorded revocation time
func (l *InMemoryRevocationList) IsAPIKeyRevoked(_ context.Context, apiKey string, issuedAt time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	revokedAt, ok := l.revokedAt[apiKey]
	if !ok {
		return false, nil
	}
	return !issuedAt.After(revokedAt), nil
}

var _ RevocationList = (*InMemoryRevocationList)(nil)
