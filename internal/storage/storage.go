package storage

import (
	"context"
	"io"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// UploadObject writes an object to the storage provider. Used for
	// server-rendered documents like plan PDFs.
	UploadObject(ctx context.Context, objectKey string, contentType string, body io.Reader) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
