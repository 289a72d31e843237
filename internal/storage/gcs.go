package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"pulseboard/internal/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSClient stores exports in a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client. STORAGE_EMULATOR_HOST is honoured by the SDK.
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	if bucketName == "" {
		return nil, errors.New("GCS bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.GetGlobalLogger().WithComponent("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// Backend returns "gcs"
func (g *GCSClient) Backend() string {
	return string(DeploymentGCS)
}

// StoreFile uploads data with a content type derived from the extension
func (g *GCSClient) StoreFile(ctx context.Context, objectPath string, data []byte) error {
	clean, err := CleanObjectPath(objectPath)
	if err != nil {
		return err
	}

	writer := g.client.Bucket(g.bucket).Object(clean).NewWriter(ctx)
	writer.ContentType = GetContentType(clean)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	g.log.Info("Stored export object", map[string]interface{}{
		"object": fmt.Sprintf("gs://%s/%s", g.bucket, clean),
		"bytes":  len(data),
	})
	return nil
}

// GetFile downloads an object
func (g *GCSClient) GetFile(ctx context.Context, objectPath string) ([]byte, error) {
	clean, err := CleanObjectPath(objectPath)
	if err != nil {
		return nil, err
	}

	reader, err := g.client.Bucket(g.bucket).Object(clean).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("file %s: %w", clean, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to create reader for file %s: %w", clean, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", clean, err)
	}
	return data, nil
}

// ListExports lists index.html objects, newest first
func (g *GCSClient) ListExports(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/"+IndexFile) {
			paths = append(paths, attrs.Name)
		}
	}
	return newestFirst(paths, limit), nil
}
