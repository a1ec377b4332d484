package main

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// judgesCmd represents the judges command
var judgesCmd = &cobra.Command{
	Use:   "judges <count>",
	Short: "Change the judge panel size",
	Long: `Change the judge panel size for the event. Every rider's score
slices are resized to match: extra judge slots start at zero, removed
slots drop their scores, and final scores are recomputed.

Examples:
  scorekeep judges 5
  scorekeep judges 2 --event harbour.json`,
	Args: cobra.ExactArgs(1),
	RunE: runJudges,
}

func init() {
	rootCmd.AddCommand(judgesCmd)
}

func runJudges(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("judge count must be a number, got %q", args[0])
	}

	codec := newCodec()
	m, err := loadEvent(codec, cmd)
	if err != nil {
		return err
	}

	previous := m.NumJudges()
	if count < previous {
		log.Warn().
			Int("previous", previous).
			Int("judges", count).
			Msg("shrinking the panel permanently drops the highest-indexed judges' scores")
	}
	if err := m.SetNumJudges(count); err != nil {
		return err
	}

	if err := codec.Save(cmd.Context(), eventPath, m); err != nil {
		return fmt.Errorf("write event %s: %w", eventPath, err)
	}

	log.Info().
		Int("previous", previous).
		Int("judges", count).
		Int("riders", m.RiderCount()).
		Msg("judge panel resized")
	return nil
}
