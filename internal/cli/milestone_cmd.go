package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tracklab/pmt/internal/cli/formatter"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Milestone maintenance",
	}
	cmd.AddCommand(newMilestoneSweepCmd(app))
	return cmd
}

func newMilestoneSweepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Close every open milestone past its target date",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			closed, err := app.Milestones.Sweep(context.Background(), now)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatMilestoneSweep(closed, now))
			return nil
		},
	}
	return cmd
}
