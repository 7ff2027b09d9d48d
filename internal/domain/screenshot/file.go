package screenshot

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timetracker/backend/internal/domain/shared"
)

// MaxFileNameLength bounds the stored file name
const MaxFileNameLength = 255

// File is an uploaded screenshot, kept private and grouped by tracking session
type File struct {
	shared.BaseAggregateRoot
	FileName          string
	FileURL           string
	StorageKey        string
	ContentType       string
	Size              int64
	IsPrivate         bool
	SessionID         string
	AttachedToDocType string
	AttachedToName    string
}

// NewFile creates a private screenshot record for a session
func NewFile(fileName, storageKey, contentType string, size int64, sessionID string) (*File, error) {
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, shared.NewDomainError("INVALID_SESSION_ID", "Session ID cannot be empty")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File cannot be empty")
	}

	f := &File{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FileName:          fileName,
		StorageKey:        storageKey,
		ContentType:       contentType,
		Size:              size,
		IsPrivate:         true,
		SessionID:         sessionID,
	}
	f.FileURL = "/private/files/" + path.Base(storageKey)
	f.AddDomainEvent(NewScreenshotUploadedEvent(f))
	return f, nil
}

// StorageKeyFor builds the object key of a screenshot in a session
func StorageKeyFor(sessionID, fileName string) string {
	return path.Join("screenshots", sessionID, uuid.NewString()+"-"+path.Base(fileName))
}

// IsAttached reports whether the file belongs to a document
func (f *File) IsAttached() bool {
	return f.AttachedToDocType != "" || f.AttachedToName != ""
}

// AttachTo links the file to a document
func (f *File) AttachTo(docType, name string) {
	f.AttachedToDocType = docType
	f.AttachedToName = name
	f.UpdatedAt = time.Now()
}

// MarkDeleted records the deletion event; the repository removes the row
func (f *File) MarkDeleted() error {
	if f.IsAttached() {
		return shared.NewDomainError("FILE_ATTACHED", "Attached files cannot be deleted")
	}
	f.AddDomainEvent(NewScreenshotDeletedEvent(f))
	return nil
}

func validateFileName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(name) > MaxFileNameLength {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot contain path separators")
	}
	return nil
}
