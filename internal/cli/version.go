package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/pkg/taskdeck"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display Taskdeck version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(taskdeck.FullVersionInfo())
	},
}
