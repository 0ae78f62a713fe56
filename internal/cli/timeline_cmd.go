package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tracklab/pmt/internal/cli/formatter"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Activity feeds",
	}
	cmd.AddCommand(newTimelineProjectCmd(app), newTimelineUserCmd(app))
	return cmd
}

func newTimelineProjectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "project <id>",
		Short: "Show a project's merged activity feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("project id must be numeric: %q", args[0])
			}
			entries, err := app.Timelines.ProjectTimeline(context.Background(), pid)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTimeline(entries))
			return nil
		},
	}
}

func newTimelineUserCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "user <username>",
		Short: "Show a user's activity feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Timelines.UserTimeline(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTimeline(entries))
			return nil
		},
	}
}
