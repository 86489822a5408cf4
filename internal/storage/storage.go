package storage

import (
	"context"
	"time"
)

const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage hands out short-lived URLs for lab report attachments. The
// schema only ever stores the resulting object reference.
type FileStorage interface {
	GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}
