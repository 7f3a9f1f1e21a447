package cmd

import (
	"github.com/spf13/cobra"

	"worktime/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect schema migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := "up"
	if len(args) == 1 {
		command = args[0]
	}

	db, err := database.Open(cfg.DatabaseURL, logLevel)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, command); err != nil {
		return err
	}
	logger.Info("migrate finished", "command", command)
	return nil
}
