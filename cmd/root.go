package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"worktime/config"
	"worktime/database"
	"worktime/logging"
	"worktime/store"
)

var (
	cfg      *config.Config
	logger   *slog.Logger
	logLevel slog.Level

	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "worktime",
	Short: "Personal work-time tracker",
	Long: `worktime records work sessions, breaks and leave, and reports how much
is left to do today and this week against a configured schedule.

Configuration is read from the environment (DATABASE_URL, JWT_SECRET,
JWT_EXPIRATION, SERVER_PORT, LOG_LEVEL, BREAK_LOOKBACK_WEEKS).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		logLevel = logging.ParseLevel(cfg.LogLevel)
		logger = logging.Setup(cfg.LogLevel)
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(useraddCmd)
}

// openDB connects and brings the schema up to date.
func openDB() (*gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseURL, logLevel)
	if err != nil {
		return nil, err
	}
	if err := database.Init(db, logger.With("component", "database")); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return db, nil
}

func openStore() (*store.Store, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	return store.New(db), nil
}
