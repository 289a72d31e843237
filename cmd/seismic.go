package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"pulseboard/internal/models"
	"pulseboard/internal/presets"
	"pulseboard/internal/reports"

	"github.com/spf13/cobra"
)

type seismicOptions struct {
	start  string
	end    string
	minMag float64
	json   bool
	export bool
}

func newSeismicCommand() *cobra.Command {
	def := presets.Default().Seismic
	opts := &seismicOptions{}
	cmd := &cobra.Command{
		Use:   "seismic",
		Short: "Search USGS earthquake events",
		Long: `Queries the USGS fdsnws event service for a date window and minimum magnitude and prints
one row per event. Fetch failures are reported and exit 0.`,
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

			loaded := a.presets.Seismic
			start, end, minMag := loaded.Start, loaded.End, loaded.MinMagnitude
			if cmd.Flags().Changed("start") {
				start = opts.start
			}
			if cmd.Flags().Changed("end") {
				end = opts.end
			}
			if cmd.Flags().Changed("min-mag") {
				minMag = opts.minMag
			}
			q, err := models.NewSeismicQuery(start, end, minMag)
			if err != nil {
				return err
			}

			res := a.fetcher.FetchQuakes(ctx, q)
			out := cmd.OutOrStdout()
			if opts.json {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				writeQuakeResult(out, res)
			}

			if opts.export {
				feed, err := a.fetcher.FetchSignificant(ctx, cfg.SignificantFeedURL, loaded.FeedLimit)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Significant feed unavailable: %v\n", err)
				}
				d, err := a.generator.SeismicDashboard(ctx, res, feed)
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

	cmd.Flags().StringVar(&opts.start, "start", def.Start, "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.end, "end", def.End, "end date, YYYY-MM-DD")
	cmd.Flags().Float64Var(&opts.minMag, "min-mag", def.MinMagnitude, "minimum magnitude, clamped to 0..10")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.export, "export", false, "export the rendered dashboard to storage")
	return cmd
}

func writeQuakeResult(w io.Writer, res models.QuakeResult) {
	fmt.Fprintln(w, reports.SeismicBanner(res).Text)
	if !res.OK() {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MAG\tPLACE\tTIME (UTC)\tLON\tLAT\tDEPTH KM")
	for _, r := range res.Table {
		mag := "-"
		if r.Magnitude != nil {
			mag = strconv.FormatFloat(*r.Magnitude, 'f', -1, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			mag,
			r.PlaceOr("-"),
			r.Time.UTC().Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(r.Longitude, 'f', -1, 64),
			strconv.FormatFloat(r.Latitude, 'f', -1, 64),
			strconv.FormatFloat(r.DepthKm, 'f', -1, 64))
	}
	tw.Flush()
}
