package screenshot

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for screenshot file persistence
type Repository interface {
	// Save creates or updates a file record
	Save(ctx context.Context, f *File) error

	// SaveBatch creates or updates several file records
	SaveBatch(ctx context.Context, files []*File) error

	// FindBySession lists every file of a tracking session
	FindBySession(ctx context.Context, sessionID string) ([]*File, error)

	// Delete permanently deletes a file record
	Delete(ctx context.Context, id uuid.UUID) error
}
