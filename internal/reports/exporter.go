package reports

import (
	"context"
	"fmt"
	"path"
	"sort"

	"pulseboard/internal/logger"
	"pulseboard/internal/storage"

	"github.com/google/uuid"
)

// ExportRecorder counts export attempts per backend
type ExportRecorder interface {
	RecordExport(backend string, err error)
}

// Exporter writes rendered dashboards to a storage backend
type Exporter struct {
	storage  storage.StorageClient
	recorder ExportRecorder
	log      *logger.Logger
}

// NewExporter creates an exporter. recorder may be nil.
func NewExporter(client storage.StorageClient, recorder ExportRecorder) *Exporter {
	return &Exporter{
		storage:  client,
		recorder: recorder,
		log:      logger.GetGlobalLogger().WithComponent("exporter"),
	}
}

// Export stores index.html, table.json and the PNG charts of a dashboard.
// It returns the object path of the stored index.html.
func (e *Exporter) Export(ctx context.Context, d *Dashboard) (string, error) {
	folder := storage.GenerateExportFolderPath(d.Kind, d.CreatedAt, uuid.NewString()[:8])
	err := e.storeAll(ctx, folder, d)
	if e.recorder != nil {
		e.recorder.RecordExport(e.storage.Backend(), err)
	}
	if err != nil {
		e.log.Error("Export failed", err, map[string]interface{}{"folder": folder, "backend": e.storage.Backend()})
		return "", err
	}

	index := path.Join(folder, storage.IndexFile)
	e.log.Info("Dashboard exported", map[string]interface{}{
		"kind":     d.Kind,
		"fetch_id": d.FetchID,
		"backend":  e.storage.Backend(),
		"path":     index,
		"files":    len(d.Images) + 2,
	})
	return index, nil
}

// Backend names the storage backend
func (e *Exporter) Backend() string {
	return e.storage.Backend()
}

// List returns stored index.html paths, newest first
func (e *Exporter) List(ctx context.Context, limit int) ([]string, error) {
	return e.storage.ListExports(ctx, limit)
}

// Open reads one stored export file
func (e *Exporter) Open(ctx context.Context, objectPath string) ([]byte, error) {
	return e.storage.GetFile(ctx, objectPath)
}

func (e *Exporter) storeAll(ctx context.Context, folder string, d *Dashboard) error {
	if err := e.storage.StoreFile(ctx, path.Join(folder, storage.IndexFile), d.HTML); err != nil {
		return fmt.Errorf("failed to store HTML: %w", err)
	}
	if err := e.storage.StoreFile(ctx, path.Join(folder, TableFile), d.TableJSON); err != nil {
		return fmt.Errorf("failed to store table: %w", err)
	}

	names := make([]string, 0, len(d.Images))
	for name := range d.Images {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.storage.StoreFile(ctx, path.Join(folder, name), d.Images[name]); err != nil {
			return fmt.Errorf("failed to store %s: %w", name, err)
		}
	}
	return nil
}
