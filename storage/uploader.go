package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object: its key in the bucket, the public
// URL it resolves to, and the ETag the storage backend reported.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader abstracts object storage for cover images and team logos.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
