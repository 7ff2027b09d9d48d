package screenshot

import (
	"time"

	"github.com/google/uuid"
	"github.com/timetracker/backend/internal/domain/screenshot"
)

// UploadInput is a base64 screenshot from the desktop client
type UploadInput struct {
	FileName  string
	FileData  string
	SessionID string
}

// UploadResult is returned after a successful upload
type UploadResult struct {
	FileURL   string `json:"file_url"`
	SessionID string `json:"session_id"`
}

// CleanupResult reports how many screenshots were removed
type CleanupResult struct {
	Status  string `json:"status"`
	Deleted int    `json:"deleted"`
}

// FileResponse describes a stored screenshot
type FileResponse struct {
	ID                uuid.UUID  `json:"id"`
	FileName          string     `json:"file_name"`
	FileURL           string     `json:"file_url"`
	ContentType       string     `json:"content_type"`
	Size              int64      `json:"file_size"`
	IsPrivate         int        `json:"is_private"`
	SessionID         string     `json:"custom_session_id"`
	AttachedToDocType string     `json:"attached_to_doctype,omitempty"`
	AttachedToName    string     `json:"attached_to_name,omitempty"`
	DownloadURL       string     `json:"download_url,omitempty"`
	ExpiresAt         *time.Time `json:"download_url_expires_at,omitempty"`
	CreatedAt         time.Time  `json:"creation"`
}

// ToFileResponse converts a file record to its response form
func ToFileResponse(f *screenshot.File) FileResponse {
	private := 0
	if f.IsPrivate {
		private = 1
	}
	return FileResponse{
		ID:                f.ID,
		FileName:          f.FileName,
		FileURL:           f.FileURL,
		ContentType:       f.ContentType,
		Size:              f.Size,
		IsPrivate:         private,
		SessionID:         f.SessionID,
		AttachedToDocType: f.AttachedToDocType,
		AttachedToName:    f.AttachedToName,
		CreatedAt:         f.CreatedAt,
	}
}
