package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfreestyle/scorekeep/infrastructure/csvio"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <roster.csv>",
	Short: "Register riders from a CSV roster",
	Long: `Register riders from a CSV roster into the event file. Columns are
matched by header name, so order does not matter; Name and Age are
required, Gender, Discipline, and Category are optional. Rows with a
blank name or a bad age are skipped and counted, never fatal.

Examples:
  scorekeep import roster.csv
  scorekeep import roster.csv --event harbour.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	codec := newCodec()
	m, err := loadEvent(codec, cmd)
	if err != nil {
		return err
	}

	summary, err := csvio.NewImporter(collector).Import(cmd.Context(), args[0], m)
	if err != nil {
		return fmt.Errorf("import roster %s: %w", args[0], err)
	}

	if err := codec.Save(cmd.Context(), eventPath, m); err != nil {
		return fmt.Errorf("write event %s: %w", eventPath, err)
	}

	log.Info().
		Str("roster", args[0]).
		Int("added", summary.Added).
		Int("skipped", summary.Skipped).
		Int("riders", m.RiderCount()).
		Msg("roster imported")
	return nil
}
