// Package storage reads spreadsheet payloads from S3-compatible object stores.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotConfigured is returned when object storage was not set up.
var ErrNotConfigured = errors.New("object storage is not configured")

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is a read-only, S3-compatible object storage client.
type Storage interface {
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}
