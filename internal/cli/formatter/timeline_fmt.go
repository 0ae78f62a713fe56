package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/service"
	"github.com/tracklab/pmt/internal/timeline"
)

// FormatTimeline renders a merged feed as an aligned table, newest last.
func FormatTimeline(entries []timeline.Entry) string {
	if len(entries) == 0 {
		return Dim("No activity.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp().Format("2006-01-02 15:04"),
			labelStyle(e.EventType()).Render(e.Label()),
			e.User(),
			domain.TruncateString(e.Title(), 40),
			domain.TruncateString(firstLine(e.Body()), 48),
		})
	}
	return RenderTable([]string{"WHEN", "KIND", "WHO", "TITLE", "DETAIL"}, rows)
}

// FormatWeeklyReport renders the per-project hour totals for one week.
func FormatWeeklyReport(report *service.WeeklyReport) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Week of %s — %s", report.WeekStart.Format("Jan 2"), report.Username)))
	b.WriteString("\n")

	if len(report.Projects) == 0 {
		b.WriteString(Dim("No time logged this week.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(report.Projects))
	for _, p := range report.Projects {
		rows = append(rows, []string{p.ProjectName, domain.FormatHours(p.Total)})
	}
	rows = append(rows, []string{Bold("Total"), Bold(domain.FormatHours(report.Total))})
	b.WriteString(RenderTable([]string{"PROJECT", "HOURS"}, rows))
	return b.String()
}

// FormatMilestoneSweep summarizes a sweep run.
func FormatMilestoneSweep(closed int, at time.Time) string {
	if closed == 0 {
		return Dim("No overdue milestones.") + "\n"
	}
	return fmt.Sprintf("Closed %d overdue milestone(s) as of %s.\n", closed, at.Format("2006-01-02"))
}

// Header renders a section header with an underline.
func Header(text string) string {
	line := strings.Repeat("─", len(text))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(text), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

func labelStyle(eventType string) lipgloss.Style {
	switch eventType {
	case "event":
		return StyleBlue
	case "comment":
		return StyleFg
	case "actual_time":
		return StyleGreen
	case "status_update":
		return StylePurple
	case "forum_post":
		return StyleYellow
	case "milestone":
		return StyleHeader
	default:
		return StyleDim
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
