package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfreestyle/scorekeep/internal/competition"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new event file",
	Long: `Create a new event file with the default discipline and category
registry. Settings come from a YAML config file when --config is given,
otherwise from the built-in defaults; --name and --date override either.

Examples:
  scorekeep init
  scorekeep init --name "Harbour Jam" --date 2026-09-12
  scorekeep init --config competition.yaml --event harbour.json`,
	RunE: runInit,
}

var (
	initName       string
	initDate       string
	initConfigPath string
	initForce      bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initName, "name", "", "Competition name")
	initCmd.Flags().StringVar(&initDate, "date", "", "Competition date (YYYY-MM-DD)")
	initCmd.Flags().StringVar(&initConfigPath, "config", "", "Path to a YAML competition config")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing event file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if !initForce {
		if _, err := os.Stat(eventPath); err == nil {
			return fmt.Errorf("event file %s already exists (use --force to overwrite)", eventPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check event file: %w", err)
		}
	}

	cfg := competition.DefaultConfig()
	if initConfigPath != "" {
		loaded, err := competition.LoadConfig(initConfigPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", initConfigPath, err)
		}
		cfg = loaded
	}
	if initName != "" {
		cfg.CompetitionName = initName
	}
	if initDate != "" {
		cfg.CompetitionDate = initDate
	}

	m := competition.New(cfg)
	if err := newCodec().Save(cmd.Context(), eventPath, m); err != nil {
		return fmt.Errorf("write event %s: %w", eventPath, err)
	}

	log.Info().
		Str("event", eventPath).
		Str("name", m.CompetitionName()).
		Str("date", m.CompetitionDate()).
		Int("judges", m.NumJudges()).
		Msg("event created")
	return nil
}
