package cli

import (
	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/internal/task"
	"github.com/eleven-am/taskdeck/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.Web()

		gw, err := connect(ctx)
		if err != nil {
			return err
		}
		defer gw.Close()

		store := task.NewStore(gw)
		orch := web.NewOrchestrator(store, log)
		handler := web.NewHandler(orch, log)

		addr := serveAddr
		if addr == "" {
			addr = serverAddr()
		}

		return web.Serve(ctx, addr, web.NewRouter(handler), log)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, then :8080)")
}
