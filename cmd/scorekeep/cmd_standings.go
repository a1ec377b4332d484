package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openfreestyle/scorekeep/internal/competition"
)

// standingsCmd represents the standings command
var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Print the current rankings",
	Long: `Print the current rankings grouped by discipline and category, in
registration order. Within a group riders rank by final score, highest
first.

Examples:
  scorekeep standings
  scorekeep standings --by category
  scorekeep standings --format json`,
	RunE: runStandings,
}

var (
	standingsBy     string
	standingsFormat string
)

func init() {
	rootCmd.AddCommand(standingsCmd)

	standingsCmd.Flags().StringVar(&standingsBy, "by", "discipline", "Grouping: discipline or category")
	standingsCmd.Flags().StringVar(&standingsFormat, "format", "table", "Output format: table or json")
}

func runStandings(cmd *cobra.Command, args []string) error {
	m, err := loadEvent(newCodec(), cmd)
	if err != nil {
		return err
	}

	var groups []competition.RiderGroup
	switch standingsBy {
	case "discipline":
		groups = m.DisciplinesWithRiders()
	case "category":
		groups = m.CategoriesWithRiders()
	default:
		return fmt.Errorf("unknown grouping %q (want discipline or category)", standingsBy)
	}

	for _, group := range groups {
		sort.SliceStable(group.Riders, func(a, b int) bool {
			return group.Riders[a].FinalScore > group.Riders[b].FinalScore
		})
	}

	switch standingsFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	case "table":
		printStandings(m, groups)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", standingsFormat)
	}
}

func printStandings(m *competition.Manager, groups []competition.RiderGroup) {
	fmt.Printf("%s (%s)\n", m.CompetitionName(), m.CompetitionDate())

	if len(groups) == 0 {
		fmt.Println("no riders registered")
		return
	}

	for _, group := range groups {
		fmt.Printf("\n%s\n", group.Key)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "POS\tNAME\tAGE\tRUN1\tRUN2\tFINAL")
		for pos, rider := range group.Riders {
			fmt.Fprintf(w, "%d\t%s\t%d\t%.1f\t%.1f\t%.1f\n",
				pos+1, rider.Name, rider.Age,
				rider.Run1Average(), rider.Run2Average(), rider.FinalScore)
		}
		w.Flush()
	}
}
