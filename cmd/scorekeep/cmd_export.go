package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfreestyle/scorekeep/infrastructure/csvio"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <results.csv>",
	Short: "Write the ranked results report",
	Long: `Write the ranked results report as CSV. Riders are grouped by
discipline and category in registration order, and ranked within each
group by final score.

Examples:
  scorekeep export results.csv
  scorekeep export results.csv --event harbour.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	m, err := loadEvent(newCodec(), cmd)
	if err != nil {
		return err
	}

	if err := csvio.NewExporter(collector).Export(cmd.Context(), args[0], m); err != nil {
		return fmt.Errorf("export results %s: %w", args[0], err)
	}

	log.Info().
		Str("results", args[0]).
		Int("riders", m.RiderCount()).
		Msg("results exported")
	return nil
}
