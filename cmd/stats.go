package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"worktime/accounting"
)

var (
	statsUser uint
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a user's statistics for today and this week",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().UintVar(&statsUser, "user", 0, "User ID")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print JSON instead of text")
	statsCmd.MarkFlagRequired("user")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	engine := accounting.NewEngine(s, time.Now, cfg.BreakLookbackWeeks, logger.With("component", "accounting"))

	view, err := engine.ComputeStats(cmd.Context(), statsUser)
	if err != nil {
		return err
	}
	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	printStats(os.Stdout, view)
	return nil
}

func printStats(w io.Writer, view accounting.StatsView) {
	fmt.Fprintf(w, "Logged today:      %s\n", view.LoggedToday)
	fmt.Fprintf(w, "Logged this week:  %s\n", view.LoggedThisWeek)
	fmt.Fprintf(w, "Remaining today:   %s of %s\n", view.RemainingToday, view.TodoToday)
	fmt.Fprintf(w, "Remaining week:    %s of %s\n", view.RemainingThisWeek, view.TodoThisWeek)
	fmt.Fprintf(w, "Overtime:          %s\n", view.Overtime)
	fmt.Fprintf(w, "Estimated finish:  %s\n", view.EstimatedFinishTime)
}
