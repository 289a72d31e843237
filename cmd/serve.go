package cmd

import (
	"pulseboard/internal/server"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboards over HTTP",
		Long:  `Starts the web server with the crypto and seismic dashboards, the JSON API, exports and /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg, true)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := server.NewServer(cfg, server.Dependencies{
				Presets:   a.presets,
				Fetcher:   a.fetcher,
				Generator: a.generator,
				Exporter:  a.exporter,
				Monitor:   a.monitor,
			})
			return srv.Run(ctx)
		},
	}
}
