package storage

import (
	"context"
)

// StorageClient stores exported dashboard artifacts
type StorageClient interface {
	// Close releases the client
	Close() error

	// StoreFile writes data at a slash-separated object path
	StoreFile(ctx context.Context, objectPath string, data []byte) error

	// GetFile reads the object at a slash-separated path
	GetFile(ctx context.Context, objectPath string) ([]byte, error)

	// ListExports returns index.html object paths, newest first
	ListExports(ctx context.Context, limit int) ([]string, error)

	// Backend names the implementation for logs and metrics
	Backend() string
}
