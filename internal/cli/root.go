package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/db"
	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/pkg/taskdeck"
)

// Global configuration variables
var (
	configFile  string
	config      *Config
	databaseURL string
	driver      string
	verbose     bool
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "Taskdeck - single-user task tracker",
		Long: `Taskdeck is a single-user task tracker backed by a relational store.

It provides:
- Task create, edit, list, filter, delete and complete operations
- Aggregate statistics (counts by status and priority, overdue, due today)
- An HTTP JSON surface for any rendering layer
- PostgreSQL and SQLite backends`,
		Version: taskdeck.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(verbose)

			var err error
			config, err = LoadConfig(configFile)
			if err != nil {
				if verbose {
					cmd.Printf("Warning: Failed to load config file: %v\n", err)
				}
			}

			if config != nil {
				if databaseURL == "" && config.Database.URL != "" {
					databaseURL = config.Database.URL
				}
				if driver == "" && config.Database.Driver != "" {
					driver = config.Database.Driver
				}
			}
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: taskdeck.yaml)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "url", "", "database connection URL")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "database driver (postgres or sqlite)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// connect builds the gateway from the resolved flag/config/env chain.
func connect(ctx context.Context) (*db.Gateway, error) {
	cfg := db.NewConfig(driver, databaseURL)
	if config != nil && config.Database.MaxConnections > 0 {
		cfg.MaxOpenConns = config.Database.MaxConnections
	}
	return cfg.Connect(ctx)
}

func serverAddr() string {
	if config != nil && config.Server.Addr != "" {
		return config.Server.Addr
	}
	return ":8080"
}
