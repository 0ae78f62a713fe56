package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tracklab/pmt/internal/httpapi"
)

func newServeCmd(app *App) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bind == "" {
				bind = app.Config.Server.Bind
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pmt"})
			return httpapi.Run(ctx, httpapi.ServerConfig{Bind: bind}, httpapi.Dependencies{
				Workflow:   app.Workflow,
				Timelines:  app.Timelines,
				Reports:    app.Reports,
				Milestones: app.Milestones,
				Projects:   app.Projects,
			}, logger)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Bind address (overrides config)")

	return cmd
}
