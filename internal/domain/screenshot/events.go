package screenshot

import "github.com/timetracker/backend/internal/domain/shared"

// Aggregate type constant for File
const AggregateTypeFile = "File"

// Event type constants for File
const (
	EventTypeScreenshotUploaded = "ScreenshotUploaded"
	EventTypeScreenshotDeleted  = "ScreenshotDeleted"
)

// ScreenshotUploadedEvent is published when a screenshot is stored
type ScreenshotUploadedEvent struct {
	shared.BaseDomainEvent
	FileName   string `json:"file_name"`
	StorageKey string `json:"storage_key"`
	SessionID  string `json:"session_id"`
	Size       int64  `json:"size"`
}

// NewScreenshotUploadedEvent creates a new ScreenshotUploadedEvent
func NewScreenshotUploadedEvent(f *File) *ScreenshotUploadedEvent {
	return &ScreenshotUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScreenshotUploaded, AggregateTypeFile, f.ID),
		FileName:        f.FileName,
		StorageKey:      f.StorageKey,
		SessionID:       f.SessionID,
		Size:            f.Size,
	}
}

// ScreenshotDeletedEvent is published when an unattached screenshot is removed
type ScreenshotDeletedEvent struct {
	shared.BaseDomainEvent
	StorageKey string `json:"storage_key"`
	SessionID  string `json:"session_id"`
}

// NewScreenshotDeletedEvent creates a new ScreenshotDeletedEvent
func NewScreenshotDeletedEvent(f *File) *ScreenshotDeletedEvent {
	return &ScreenshotDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScreenshotDeleted, AggregateTypeFile, f.ID),
		StorageKey:      f.StorageKey,
		SessionID:       f.SessionID,
	}
}
