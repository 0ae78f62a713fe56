package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tracklab/pmt/internal/domain"
	"github.com/tracklab/pmt/internal/repository"
	"github.com/tracklab/pmt/internal/service"
	"github.com/tracklab/pmt/internal/timeline"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONG HEADER"}, [][]string{
		{"x", "y"},
		{"wider cell", "z"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, lines[0], "LONG HEADER")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, lines[3], "wider cell")
}

func TestFormatTimeline(t *testing.T) {
	item := domain.Item{IID: 3, Title: "broken login", Type: domain.ItemTypeBug}
	entries := []timeline.Entry{
		timeline.ActualTimeEntry{
			ActualTime: domain.ActualTime{
				Resolver:  "alice",
				Duration:  time.Hour,
				Completed: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			},
			Item: item,
		},
	}

	out := FormatTimeline(entries)
	assert.Contains(t, out, "TIME LOGGED")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "broken login")
	assert.Contains(t, out, "1.00 hours")

	assert.Contains(t, FormatTimeline(nil), "No activity")
}

func TestLabelStyle_RendersEveryKind(t *testing.T) {
	DisableColor()
	for _, kind := range []string{
		"event", "comment", "actual_time", "status_update",
		"forum_post", "milestone", "unknown",
	} {
		assert.Equal(t, "MARK", labelStyle(kind).Render("MARK"), kind)
	}
}

func TestFormatWeeklyReport(t *testing.T) {
	report := &service.WeeklyReport{
		Username:  "alice",
		WeekStart: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Projects: []repository.ProjectHours{
			{ProjectID: 1, ProjectName: "Apollo", Total: 3 * time.Hour},
		},
		Total: 3 * time.Hour,
	}

	out := FormatWeeklyReport(report)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Apollo")
	assert.Contains(t, out, "3.00 hours")

	empty := &service.WeeklyReport{Username: "bob", WeekStart: report.WeekStart}
	assert.Contains(t, FormatWeeklyReport(empty), "No time logged")
}
