package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	screenshotapp "github.com/timetracker/backend/internal/application/screenshot"
)

var _ screenshotapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// Object is a stored blob
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryObjectStorage keeps objects in process memory. It serves local
// development and tests; objects are lost on restart.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
}

// NewMemoryObjectStorage creates an empty store whose download URLs start with baseURL
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string]Object),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores a copy of data under storageKey
func (s *MemoryObjectStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = Object{Data: buf, ContentType: contentType}
	return nil
}

// DeleteObject removes an object; missing keys are ignored
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// GenerateDownloadURL returns a URL carrying the key and expiry time
func (s *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := time.Now().Add(expiresIn)

	q := url.Values{}
	q.Set("expires", expiresAt.UTC().Format(time.RFC3339))
	return s.baseURL + "/" + storageKey + "?" + q.Encode(), expiresAt, nil
}

// Get returns a stored object
func (s *MemoryObjectStorage) Get(storageKey string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	return obj, ok
}

// Len returns the number of stored objects
func (s *MemoryObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
