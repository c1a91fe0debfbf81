package cli

import (
	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/task"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate task statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		gw, err := connect(ctx)
		if err != nil {
			return err
		}
		defer gw.Close()

		store := task.NewStore(gw)
		stats, err := store.Statistics(ctx)
		if err != nil {
			return err
		}

		cmd.Println("By status:")
		for _, s := range task.AllowedStatuses() {
			cmd.Printf("  %-12s %d\n", s, stats.ByStatus[s])
		}
		cmd.Println("By priority:")
		for _, p := range task.AllowedPriorities() {
			cmd.Printf("  %-12s %d\n", p, stats.ByPriority[p])
		}
		cmd.Printf("Overdue:   %d\n", stats.Overdue)
		cmd.Printf("Due today: %d\n", stats.DueToday)
		return nil
	},
}
