package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default taskdeck.yaml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "taskdeck.yaml"
		if configFile != "" {
			path = configFile
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		cfg := &Config{
			Version: "1",
			Project: "taskdeck",
		}
		cfg.Database.Driver = "postgres"
		cfg.Database.URL = "postgres://localhost:5432/taskdeck?sslmode=disable"
		applyDefaults(cfg)

		if err := SaveConfig(cfg, path); err != nil {
			return err
		}

		cmd.Printf("Created %s\n", path)
		return nil
	},
}
