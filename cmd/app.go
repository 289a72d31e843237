package cmd

import (
	"context"
	"fmt"

	"pulseboard/internal/config"
	"pulseboard/internal/fetchers"
	"pulseboard/internal/llm"
	"pulseboard/internal/logger"
	"pulseboard/internal/metrics"
	"pulseboard/internal/presets"
	"pulseboard/internal/reports"
	"pulseboard/internal/storage"
)

// app wires the components shared by the server and the one-shot commands
type app struct {
	cfg       *config.Config
	presets   presets.Presets
	monitor   *metrics.Monitor
	fetcher   *fetchers.DataFetcher
	generator *reports.Generator
	storage   storage.StorageClient
	exporter  *reports.Exporter
}

// newApp builds the components. The storage backend is only opened when
// withStorage is set so that plain CLI runs leave no side effects.
func newApp(ctx context.Context, cfg *config.Config, withStorage bool) (*app, error) {
	p, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		return nil, err
	}

	html, err := reports.NewHTMLBuilder(config.GetVersion())
	if err != nil {
		return nil, err
	}

	var narrator reports.Narrator
	if cfg.NarrativeEnabled() {
		narrator = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		logger.Info("Narrative summaries enabled", map[string]interface{}{"model": cfg.OpenAIModel})
	}

	monitor := metrics.New(metrics.DefaultConfig())
	a := &app{
		cfg:       cfg,
		presets:   p,
		monitor:   monitor,
		fetcher:   fetchers.NewDataFetcher(fetchers.OptionsFromConfig(cfg, monitor)),
		generator: reports.NewGenerator(html, p, narrator),
	}

	if withStorage {
		client, err := storage.NewStorageClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.storage = client
		a.exporter = reports.NewExporter(client, monitor)
		logger.Info("Export storage ready", map[string]interface{}{"backend": client.Backend()})
	}
	return a, nil
}

// export stores a rendered dashboard with the configured backend
func (a *app) export(ctx context.Context, d *reports.Dashboard) (string, error) {
	if a.exporter == nil {
		return "", fmt.Errorf("export storage is not configured")
	}
	return a.exporter.Export(ctx, d)
}

// Close releases the storage backend
func (a *app) Close() error {
	if a.storage != nil {
		return a.storage.Close()
	}
	return nil
}
