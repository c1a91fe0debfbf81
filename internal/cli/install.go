package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/internal/task"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Create the database schema and seed default categories",
	Long: `Creates the tasks and categories tables for the configured driver
and seeds the default categories. Safe to run more than once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.CLI()

		gw, err := connect(ctx)
		if err != nil {
			return err
		}
		defer gw.Close()

		if err := task.InstallSchema(ctx, gw); err != nil {
			return err
		}

		log.Info("schema installed", slog.String("driver", gw.Driver()))
		cmd.Println("Schema installed.")
		return nil
	},
}
