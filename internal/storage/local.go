package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorageClient stores exports under a local directory
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalStorageClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// Backend returns "local"
func (l *LocalStorageClient) Backend() string {
	return string(DeploymentLocal)
}

func (l *LocalStorageClient) resolve(objectPath string) (string, error) {
	clean, err := CleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.baseDir, filepath.FromSlash(clean)), nil
}

// StoreFile writes data under baseDir, creating parent directories
func (l *LocalStorageClient) StoreFile(ctx context.Context, objectPath string, data []byte) error {
	filePath, err := l.resolve(objectPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return nil
}

// GetFile reads a file stored under baseDir
func (l *LocalStorageClient) GetFile(ctx context.Context, objectPath string) ([]byte, error) {
	filePath, err := l.resolve(objectPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %s: %w", objectPath, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// ListExports walks baseDir for index.html files, newest first
func (l *LocalStorageClient) ListExports(ctx context.Context, limit int) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == IndexFile {
			rel, relErr := filepath.Rel(l.baseDir, p)
			if relErr == nil {
				paths = append(paths, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk reports directory: %w", err)
	}
	return newestFirst(paths, limit), nil
}
