package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"pulseboard/internal/models"
	"pulseboard/internal/presets"
	"pulseboard/internal/reports"

	"github.com/spf13/cobra"
)

type cryptoOptions struct {
	ids              string
	vs               string
	common           bool
	commonAssets     bool
	commonCurrencies bool
	json             bool
	export           bool
}

func (o *cryptoOptions) preset() string {
	switch {
	case o.common, o.commonAssets && o.commonCurrencies:
		return presets.PresetCommon
	case o.commonAssets:
		return presets.PresetCommonAssets
	case o.commonCurrencies:
		return presets.PresetCommonCurrencies
	}
	return ""
}

func newCryptoCommand() *cobra.Command {
	opts := &cryptoOptions{}
	cmd := &cobra.Command{
		Use:   "crypto",
		Short: "Fetch cryptocurrency spot prices",
		Long: `Fetches simple/price from CoinGecko for the given ids and quote currencies and prints
one row per (asset, currency) pair. Fetch failures are reported and exit 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			a, err := newApp(ctx, cfg, opts.export)
			if err != nil {
				return err
			}
			defer a.Close()

			typed := a.presets.Crypto.Default
			if cmd.Flags().Changed("ids") {
				typed.Assets = opts.ids
			}
			if cmd.Flags().Changed("vs") {
				typed.Currencies = opts.vs
			}
			q, err := a.presets.Crypto.Resolve(opts.preset(), typed)
			if err != nil {
				return err
			}

			res := a.fetcher.FetchPrices(ctx, q)
			out := cmd.OutOrStdout()
			if opts.json {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				writePriceResult(out, res)
			}

			if opts.export {
				d, err := a.generator.CryptoDashboard(ctx, res)
				if err != nil {
					return err
				}
				index, err := a.export(ctx, d)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported dashboard to %s\n", index)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ids, "ids", "", "comma-separated CoinGecko ids (default from presets)")
	cmd.Flags().StringVar(&opts.vs, "vs", "", "comma-separated quote currencies (default from presets)")
	cmd.Flags().BoolVar(&opts.common, "common", false, "use the common cryptocurrencies and currencies")
	cmd.Flags().BoolVar(&opts.commonAssets, "common-assets", false, "use the common cryptocurrencies, keeping --vs")
	cmd.Flags().BoolVar(&opts.commonCurrencies, "common-currencies", false, "use the common currencies, keeping --ids")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.export, "export", false, "export the rendered dashboard to storage")
	return cmd
}

func writePriceResult(w io.Writer, res models.PriceResult) {
	if banner := reports.CryptoBanner(res); banner.Text != "" {
		fmt.Fprintln(w, banner.Text)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CRYPTO\tCURRENCY\tPRICE")
	for _, r := range res.Table {
		price := "-"
		if r.Price != nil {
			price = strconv.FormatFloat(*r.Price, 'f', -1, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Asset, r.Currency, price)
	}
	tw.Flush()
	fmt.Fprintf(w, "Number of data points: %d\n", len(res.Table))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
