package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"worktime/accounting"
)

var weeksUser uint

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List the weeks that have records, newest first",
	Args:  cobra.NoArgs,
	RunE:  runWeeks,
}

func init() {
	weeksCmd.Flags().UintVar(&weeksUser, "user", 0, "User ID")
	weeksCmd.MarkFlagRequired("user")
}

func runWeeks(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	engine := accounting.NewEngine(s, time.Now, cfg.BreakLookbackWeeks, logger.With("component", "accounting"))

	weeks, err := engine.ListWeeks(cmd.Context(), weeksUser)
	if err != nil {
		return err
	}
	if len(weeks) == 0 {
		fmt.Println("No records.")
		return nil
	}
	for _, id := range weeks {
		fmt.Println(id)
	}
	return nil
}
