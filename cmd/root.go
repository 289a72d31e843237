package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pulseboard/internal/config"
	"pulseboard/internal/logger"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the pulseboard command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pulseboard",
		Short:         "Crypto price and seismic activity dashboards",
		Long:          `Fetches CoinGecko spot prices and USGS earthquake events, normalizes them into tables and renders dashboards over HTTP or on the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newCryptoCommand(),
		newSeismicCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command until completion or SIGINT/SIGTERM
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// loadConfig reads and validates the environment, then configures logging
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pulseboard %s\n", config.GetVersion())
		},
	}
}
