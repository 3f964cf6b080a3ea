package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trackdeck/internal/pipeline"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the card deck PDF and web bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			result, err := pipeline.New(cfg, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Artifact", "Path"},
				[][]string{
					{"Card deck", result.PDFPath},
					{"Manifest", result.ManifestPath},
					{"Player", result.PlayerPath},
				},
				nil,
			))
			fmt.Fprintf(out, "\n%d tracks on %d pages\n\n", len(result.Tracks), len(result.Pages))
			printReport(out, result.Report)
			return nil
		},
	}
}
