// Package storage defines the storage connections the result exporter writes to.
// Backends register themselves through RegisterConnectionFactory; import the
// local or gcs sub-package to make a type available.
package storage

import (
	"context"
	"io"
)

// StorageExecutor defines generic object storage operations.
type StorageExecutor interface {
	// Upload writes data to bucket/objectName. An empty bucket selects the configured default.
	Upload(ctx context.Context, bucket, objectName string, data io.Reader, contentType string) error
	// Download opens bucket/objectName. The caller closes the returned reader.
	Download(ctx context.Context, bucket, objectName string) (io.ReadCloser, error)
	// ListObjects calls fn for each object under prefix.
	ListObjects(ctx context.Context, bucket, prefix string, fn func(objectName string) error) error
	// DeleteObject removes bucket/objectName. A missing object is not an error.
	DeleteObject(ctx context.Context, bucket, objectName string) error
}

// StorageConnection is a named, closable StorageExecutor.
type StorageConnection interface {
	StorageExecutor
	Close() error
	// Type returns the backend type, e.g. "local".
	Type() string
	// Name returns the configuration entry the connection was opened from.
	Name() string
}
