package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tracklab/pmt/internal/cli/formatter"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Time reports",
	}
	cmd.AddCommand(newReportWeeklyCmd(app))
	return cmd
}

func newReportWeeklyCmd(app *App) *cobra.Command {
	var username string
	var rawDate string
	var send bool

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show or email one user's weekly hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().UTC()
			if rawDate != "" {
				parsed, err := time.Parse("2006-01-02", rawDate)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
				date = parsed
			}

			ctx := context.Background()
			if send {
				if username != "" {
					return app.Reports.SendWeeklyReport(ctx, username, date)
				}
				return app.Reports.SendWeeklyReports(ctx, app.Config.Report.Recipients, date)
			}
			if username == "" {
				return fmt.Errorf("--user is required")
			}

			report, err := app.Reports.WeeklyReport(ctx, username, date)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatWeeklyReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username to report on")
	cmd.Flags().StringVar(&rawDate, "date", "", "Any date inside the week (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&send, "send", false, "Email the report instead of printing it; without --user it goes to the configured recipients, or every active user")

	return cmd
}
