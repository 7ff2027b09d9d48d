package screenshot

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockFileRepository is a mock implementation of screenshot.Repository
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Save(ctx context.Context, f *screenshot.File) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFileRepository) SaveBatch(ctx context.Context, files []*screenshot.File) error {
	args := m.Called(ctx, files)
	return args.Error(0)
}

func (m *MockFileRepository) FindBySession(ctx context.Context, sessionID string) ([]*screenshot.File, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*screenshot.File), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func newTestService(maxBytes int64) (*Service, *MockFileRepository, *MockObjectStorage, *recordingPublisher) {
	repo := new(MockFileRepository)
	storage := new(MockObjectStorage)
	pub := &recordingPublisher{}
	svc := NewService(repo, storage, pub, ServiceConfig{MaxBytes: maxBytes}, zap.NewNop())
	return svc, repo, storage, pub
}

func TestService_Upload(t *testing.T) {
	ctx := context.Background()
	svc, repo, storage, pub := newTestService(0)

	storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "screenshots/sess-1/") && strings.HasSuffix(key, "-shot.png")
	}), pngBytes, "image/png").Return(nil)
	repo.On("Save", ctx, mock.AnythingOfType("*screenshot.File")).Return(nil)

	res, err := svc.Upload(ctx, UploadInput{
		FileName:  "shot.png",
		FileData:  base64.StdEncoding.EncodeToString(pngBytes),
		SessionID: "sess-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "sess-1", res.SessionID)
	assert.True(t, strings.HasPrefix(res.FileURL, "/private/files/"))
	require.Len(t, pub.events, 1)
	assert.Equal(t, screenshot.EventTypeScreenshotUploaded, pub.events[0].EventType())

	saved := repo.Calls[0].Arguments.Get(1).(*screenshot.File)
	assert.True(t, saved.IsPrivate)
	assert.Equal(t, int64(len(pngBytes)), saved.Size)
}

func TestService_Upload_DataURLPrefix(t *testing.T) {
	ctx := context.Background()
	svc, repo, storage, _ := newTestService(0)
	storage.On("Upload", ctx, mock.Anything, pngBytes, "image/png").Return(nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	_, err := svc.Upload(ctx, UploadInput{
		FileName:  "shot.png",
		FileData:  "data:image/png;base64," + base64.RawStdEncoding.EncodeToString(pngBytes),
		SessionID: "sess-1",
	})
	require.NoError(t, err)
}

func TestService_Upload_Rejections(t *testing.T) {
	tests := []struct {
		name string
		data string
		max  int64
		code string
	}{
		{"bad base64", "!!!not base64!!!", 0, "INVALID_INPUT"},
		{"empty", "", 0, "INVALID_INPUT"},
		{"too large", base64.StdEncoding.EncodeToString(pngBytes), 8, "FILE_TOO_LARGE"},
		{"not an image", base64.StdEncoding.EncodeToString([]byte("#!/bin/sh\necho hi\n")), 0, "INVALID_CONTENT_TYPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, storage, _ := newTestService(tt.max)

			_, err := svc.Upload(context.Background(), UploadInput{
				FileName: "shot.png", FileData: tt.data, SessionID: "sess-1",
			})
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Code)
			storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Upload_SaveFailureRemovesObject(t *testing.T) {
	ctx := context.Background()
	svc, repo, storage, pub := newTestService(0)
	storage.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storage.On("DeleteObject", ctx, mock.Anything).Return(nil)
	repo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Upload(ctx, UploadInput{
		FileName: "shot.png", FileData: base64.StdEncoding.EncodeToString(pngBytes), SessionID: "sess-1",
	})
	require.Error(t, err)
	storage.AssertCalled(t, "DeleteObject", ctx, mock.Anything)
	assert.Empty(t, pub.events)
}

func TestService_CleanupSession(t *testing.T) {
	ctx := context.Background()
	svc, repo, storage, pub := newTestService(0)

	loose, err := screenshot.NewFile("a.png", "screenshots/s/1-a.png", "image/png", 10, "s")
	require.NoError(t, err)
	kept, err := screenshot.NewFile("b.png", "screenshots/s/2-b.png", "image/png", 10, "s")
	require.NoError(t, err)
	kept.AttachTo("Timesheet", "TS-1")
	loose.ClearDomainEvents()
	kept.ClearDomainEvents()

	repo.On("FindBySession", ctx, "s").Return([]*screenshot.File{loose, kept}, nil)
	repo.On("Delete", ctx, loose.ID).Return(nil)
	storage.On("DeleteObject", ctx, loose.StorageKey).Return(errors.New("gone already"))

	res, err := svc.CleanupSession(ctx, "s")
	require.NoError(t, err)

	assert.Equal(t, &CleanupResult{Status: "cleaned", Deleted: 1}, res)
	repo.AssertNotCalled(t, "Delete", ctx, kept.ID)
	require.Len(t, pub.events, 1)
	assert.Equal(t, screenshot.EventTypeScreenshotDeleted, pub.events[0].EventType())
}

func TestService_CleanupSession_Empty(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService(0)
	repo.On("FindBySession", ctx, "none").Return([]*screenshot.File{}, nil)

	res, err := svc.CleanupSession(ctx, "none")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Deleted)
}

func TestService_ListSession(t *testing.T) {
	ctx := context.Background()
	svc, repo, storage, _ := newTestService(0)

	f, err := screenshot.NewFile("a.png", "screenshots/s/1-a.png", "image/png", 10, "s")
	require.NoError(t, err)
	expires := time.Now().Add(15 * time.Minute)

	repo.On("FindBySession", ctx, "s").Return([]*screenshot.File{f}, nil)
	storage.On("GenerateDownloadURL", ctx, f.StorageKey, 15*time.Minute).Return("https://s3/presigned", expires, nil)

	got, err := svc.ListSession(ctx, "s")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://s3/presigned", got[0].DownloadURL)
	assert.Equal(t, 1, got[0].IsPrivate)
	require.NotNil(t, got[0].ExpiresAt)
}
