package screenshot

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AllowedContentTypes lists the image types a screenshot may have
var AllowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
	"image/bmp":  true,
}

// ObjectStorage is where screenshot bytes live
type ObjectStorage interface {
	// Upload stores data under storageKey
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// DeleteObject removes an object; deleting a missing object is not an error
	DeleteObject(ctx context.Context, storageKey string) error

	// GenerateDownloadURL returns a short-lived URL for reading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// ServiceConfig holds screenshot limits
type ServiceConfig struct {
	// MaxBytes is the largest decoded screenshot accepted
	MaxBytes int64
	// DownloadURLExpiry is how long listed download URLs stay valid
	DownloadURLExpiry time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxBytes:          10 * 1024 * 1024,
		DownloadURLExpiry: 15 * time.Minute,
	}
}

// Service uploads and cleans up session screenshots
type Service struct {
	repo      screenshot.Repository
	storage   ObjectStorage
	publisher shared.EventPublisher
	config    ServiceConfig
	logger    *zap.Logger
}

// NewService creates a screenshot service
func NewService(
	repo screenshot.Repository,
	storage ObjectStorage,
	publisher shared.EventPublisher,
	config ServiceConfig,
	logger *zap.Logger,
) *Service {
	if config.MaxBytes <= 0 {
		config.MaxBytes = DefaultServiceConfig().MaxBytes
	}
	if config.DownloadURLExpiry <= 0 {
		config.DownloadURLExpiry = DefaultServiceConfig().DownloadURLExpiry
	}
	return &Service{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		config:    config,
		logger:    logger,
	}
}

// Upload decodes a base64 screenshot, stores it privately and records it
// against its session.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	data, err := decodeBase64(in.FileData)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "file_data is not valid base64")
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "file_data is empty")
	}
	if int64(len(data)) > s.config.MaxBytes {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("Screenshot exceeds %d bytes", s.config.MaxBytes))
	}

	contentType := mimetype.Detect(data).String()
	if !AllowedContentTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE",
			fmt.Sprintf("Content type %s is not allowed", contentType))
	}

	key := screenshot.StorageKeyFor(in.SessionID, in.FileName)
	file, err := screenshot.NewFile(in.FileName, key, contentType, int64(len(data)), in.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.log(ctx).Error("failed to store screenshot",
			zap.String("session_id", in.SessionID),
			zap.String("storage_key", key),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.repo.Save(ctx, file); err != nil {
		if delErr := s.storage.DeleteObject(ctx, key); delErr != nil {
			s.log(ctx).Warn("failed to remove orphaned screenshot object",
				zap.String("storage_key", key),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.publish(ctx, file.GetDomainEvents())
	file.ClearDomainEvents()

	return &UploadResult{
		FileURL:   file.FileURL,
		SessionID: in.SessionID,
	}, nil
}

// ListSession returns the screenshots of a session with download URLs
func (s *Service) ListSession(ctx context.Context, sessionID string) ([]FileResponse, error) {
	files, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]FileResponse, 0, len(files))
	for _, f := range files {
		resp := ToFileResponse(f)
		url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, f.StorageKey, s.config.DownloadURLExpiry)
		if err != nil {
			s.log(ctx).Warn("failed to presign screenshot",
				zap.String("storage_key", f.StorageKey),
				zap.Error(err),
			)
		} else {
			resp.DownloadURL = url
			resp.ExpiresAt = &expiresAt
		}
		out = append(out, resp)
	}
	return out, nil
}

// CleanupSession deletes the session's screenshots that are not attached to
// any document. Attached files are kept.
func (s *Service) CleanupSession(ctx context.Context, sessionID string) (*CleanupResult, error) {
	files, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		s.log(ctx).Error("cleanup session error",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	deleted := 0
	var events []shared.DomainEvent
	for _, f := range files {
		if f.IsAttached() {
			continue
		}
		if err := f.MarkDeleted(); err != nil {
			return nil, err
		}
		if err := s.repo.Delete(ctx, f.ID); err != nil {
			return nil, err
		}
		if err := s.storage.DeleteObject(ctx, f.StorageKey); err != nil {
			s.log(ctx).Warn("failed to delete screenshot object",
				zap.String("storage_key", f.StorageKey),
				zap.Error(err),
			)
		}
		events = append(events, f.GetDomainEvents()...)
		f.ClearDomainEvents()
		deleted++
	}

	s.publish(ctx, events)
	s.log(ctx).Info("cleanup session",
		zap.String("session_id", sessionID),
		zap.Int("deleted", deleted),
	)

	return &CleanupResult{Status: "cleaned", Deleted: deleted}, nil
}

func (s *Service) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.log(ctx).Error("failed to publish screenshot events", zap.Error(err))
	}
}

// decodeBase64 accepts padded or unpadded standard base64 and tolerates a
// leading data URL prefix.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// log returns the request logger carried by ctx, falling back to the
// service logger outside a request.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.ForContext(ctx, s.logger)
}
