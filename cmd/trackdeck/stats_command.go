package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"trackdeck/internal/logging"
	"trackdeck/internal/services/metaflac"
	"trackdeck/internal/stats"
	"trackdeck/internal/track"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the year and decade distribution of the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			loader := &track.Loader{
				Metaflac: metaflac.New(cfg.Audio.MetaflacBinary,
					time.Duration(cfg.Audio.TimeoutSeconds)*time.Second),
				Logger: logging.WithComponent(logger, "track"),
			}
			tracks, err := loader.LoadDir(cmd.Context(), cfg.Input.TrackDir)
			if err != nil {
				return err
			}

			report := stats.Analyze(tracks)
			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(report)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}

func printReport(out io.Writer, report stats.Report) {
	yearRows := make([][]string, 0, len(report.Years))
	for _, bucket := range report.Years {
		yearRows = append(yearRows, []string{
			strconv.Itoa(bucket.Key), strconv.Itoa(bucket.Count), stats.Bar(bucket.Count),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Year", "Tracks", ""},
		yearRows,
		[]columnAlignment{alignRight, alignRight, alignLeft},
	))

	decadeRows := make([][]string, 0, len(report.Decades))
	for _, bucket := range report.Decades {
		decadeRows = append(decadeRows, []string{
			fmt.Sprintf("%ds", bucket.Key), strconv.Itoa(bucket.Count), stats.Bar(bucket.Count),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Decade", "Tracks", ""},
		decadeRows,
		[]columnAlignment{alignRight, alignRight, alignLeft},
	))

	if report.Unknown > 0 {
		fmt.Fprintf(out, "Unknown year: %d\n", report.Unknown)
	}
	fmt.Fprintf(out, "Total: %d tracks\n", report.Total)
}
