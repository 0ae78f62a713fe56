package cli

import (
	"github.com/spf13/cobra"
	"github.com/tracklab/pmt/internal/config"
	"github.com/tracklab/pmt/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Workflow   service.WorkflowService
	Timelines  service.TimelineService
	Reports    service.ReportService
	Milestones service.MilestoneService
	Projects   service.ProjectService

	Config config.Config
}

// NewRootCmd creates the top-level "pmt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pmt",
		Short: "Project management and issue tracking",
	}

	root.AddCommand(
		newServeCmd(app),
		newReportCmd(app),
		newMilestoneCmd(app),
		newTimelineCmd(app),
	)

	return root
}
