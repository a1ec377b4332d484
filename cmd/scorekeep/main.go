// Command scorekeep manages freestyle competition event files: it
// creates events, imports rider rosters, records judge settings, and
// exports ranked results.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openfreestyle/scorekeep/infrastructure/eventfile"
	"github.com/openfreestyle/scorekeep/infrastructure/telemetry"
	"github.com/openfreestyle/scorekeep/internal/competition"
)

var (
	eventPath string
	verbose   bool
)

// rootCmd is the base command for the scorekeep CLI
var rootCmd = &cobra.Command{
	Use:   "scorekeep",
	Short: "Freestyle competition scoring tool",
	Long: `Scorekeep manages a freestyle competition from registration to results.
State lives in a single JSON event file, so every command loads the
event, applies its change, and writes the file back.

Example usage:
  scorekeep init --name "Harbour Jam"        # Create a new event file
  scorekeep import roster.csv                # Register riders from a CSV
  scorekeep judges 5                         # Change the judge panel size
  scorekeep standings                        # Print current rankings
  scorekeep export results.csv               # Write the results report`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&eventPath, "event", "event.json", "Path to the event file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// collector is shared by every command so the process keeps a single
// set of registered Prometheus metrics.
var collector = telemetry.NewPrometheusMetrics()

// newCodec builds the event codec shared by every command.
func newCodec() *eventfile.Codec {
	return eventfile.NewCodec(collector)
}

// loadEvent reads the event file into a fresh manager.
func loadEvent(codec *eventfile.Codec, cmd *cobra.Command) (*competition.Manager, error) {
	m := competition.New(competition.DefaultConfig())
	if err := codec.Load(cmd.Context(), eventPath, m); err != nil {
		return nil, fmt.Errorf("load event %s: %w", eventPath, err)
	}
	log.Debug().Str("event", eventPath).Int("riders", m.RiderCount()).Msg("event loaded")
	return m, nil
}
